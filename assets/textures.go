package assets

import (
	"image"
	"image/draw"
	"runtime"

	"github.com/bloeys/nshade/gpu"
	"github.com/mandykoh/prism"
)

type Texture struct {
	// Path only exists for textures loaded from disk
	Path   string
	TexID  uint32
	Width  int32
	Height int32

	// Pixels in RGBA8, bottom row first. Only kept when KeepPixelsInMem is set
	Pixels []byte
}

type TextureLoadOptions struct {
	TryLoadFromCache bool
	WriteToCache     bool
	GenMipMaps       bool
	KeepPixelsInMem  bool

	// NoFlip keeps the image rows top first. Cube map faces are expected top first
	NoFlip bool
}

var (
	// Textures is the cache used by TryLoadFromCache/WriteToCache, keyed by path
	Textures = map[string]Texture{}
)

func LoadTexture(dev gpu.Device, file string, loadOptions *TextureLoadOptions) (Texture, error) {

	if loadOptions == nil {
		loadOptions = &TextureLoadOptions{}
	}

	if loadOptions.TryLoadFromCache {
		if tex, ok := Textures[file]; ok {
			return tex, nil
		}
	}

	img, err := decodeImageFile(file)
	if err != nil {
		return Texture{}, err
	}

	tex := LoadTextureFromImage(dev, img, loadOptions)
	tex.Path = file

	if loadOptions.WriteToCache {
		Textures[file] = tex
	}

	return tex, nil
}

// LoadTextureFromImage uploads img as an RGBA8 2D texture with repeat wrapping and linear filtering
func LoadTextureFromImage(dev gpu.Device, img image.Image, loadOptions *TextureLoadOptions) Texture {

	if loadOptions == nil {
		loadOptions = &TextureLoadOptions{}
	}

	pixels, width, height := imageToRGBA8(img, !loadOptions.NoFlip)

	tex := Texture{
		TexID:  dev.GenTexture(),
		Width:  width,
		Height: height,
	}

	params := gpu.TextureParams{
		MinFilter: gpu.TextureFilter_Linear,
		MagFilter: gpu.TextureFilter_Linear,
		WrapS:     gpu.TextureWrap_Repeat,
		WrapT:     gpu.TextureWrap_Repeat,
	}

	if loadOptions.GenMipMaps {
		params.MinFilter = gpu.TextureFilter_LinearMipmapLinear
	}

	dev.BindTexture(gpu.TextureTarget_2D, tex.TexID)
	dev.SetTextureParams(gpu.TextureTarget_2D, params)
	dev.TexImage2D(gpu.TextureTarget_2D, 0, gpu.TextureFormat_RGBA8, width, height, pixels)

	if loadOptions.GenMipMaps {
		dev.GenerateMipmap(gpu.TextureTarget_2D)
	}

	dev.BindTexture(gpu.TextureTarget_2D, 0)

	if loadOptions.KeepPixelsInMem {
		tex.Pixels = pixels
	}

	return tex
}

// imageToRGBA8 converts any image into tightly packed non-premultiplied RGBA8.
// When flip is set rows are returned bottom first, which is what GL expects for 2D textures
func imageToRGBA8(img image.Image, flip bool) ([]byte, int32, int32) {

	nrgba := prism.ConvertImageToNRGBA(img, runtime.NumCPU())

	// Sub-images have an offset origin and a stride bigger than the width
	b := nrgba.Bounds()
	if b.Min.X != 0 || b.Min.Y != 0 || nrgba.Stride != b.Dx()*4 {
		tight := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(tight, tight.Bounds(), nrgba, b.Min, draw.Src)
		nrgba = tight
	}

	width, height := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	if !flip {
		return nrgba.Pix, int32(width), int32(height)
	}

	rowSize := width * 4
	pixels := make([]byte, len(nrgba.Pix))
	for y := 0; y < height; y++ {
		copy(pixels[(height-1-y)*rowSize:(height-y)*rowSize], nrgba.Pix[y*rowSize:(y+1)*rowSize])
	}

	return pixels, int32(width), int32(height)
}

func DeleteTexture(dev gpu.Device, tex *Texture) {

	if tex.TexID == 0 {
		return
	}

	if tex.Path != "" {
		delete(Textures, tex.Path)
	}

	dev.DeleteTexture(tex.TexID)
	tex.TexID = 0
}

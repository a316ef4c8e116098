package assets

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/bloeys/nshade/gpu"
	"github.com/bloeys/nshade/logging"
)

type Cubemap struct {
	// These only exists for textures loaded from disk
	RightPath string
	LeftPath  string
	TopPath   string
	BotPath   string
	FrontPath string
	BackPath  string

	TexID uint32
}

// LoadCubemapTextures loads six images into a cube map in GL face order (+X,-X,+Y,-Y,+Z,-Z)
func LoadCubemapTextures(dev gpu.Device, rightTex, leftTex, topTex, botTex, frontTex, backTex string) (Cubemap, error) {

	imgs, err := DecodeImageFiles(rightTex, leftTex, topTex, botTex, frontTex, backTex)
	if err != nil {
		return Cubemap{}, err
	}

	var faces [6]image.Image
	copy(faces[:], imgs)

	cmap, err := LoadCubemapFromImages(dev, faces)
	if err != nil {
		return Cubemap{}, fmt.Errorf("cube map '%s': %w", rightTex, err)
	}

	cmap.RightPath = rightTex
	cmap.LeftPath = leftTex
	cmap.TopPath = topTex
	cmap.BotPath = botTex
	cmap.FrontPath = frontTex
	cmap.BackPath = backTex
	return cmap, nil
}

// LoadCubemapFromImages uploads the faces, resizing any face whose size differs from the first one
func LoadCubemapFromImages(dev gpu.Device, faces [6]image.Image) (Cubemap, error) {

	faceSize := faces[0].Bounds().Size()
	if faceSize.X <= 0 || faceSize.Y <= 0 {
		return Cubemap{}, fmt.Errorf("cube map face 0 has invalid size %v", faceSize)
	}

	for i := 1; i < len(faces); i++ {

		if faces[i].Bounds().Size() == faceSize {
			continue
		}

		logging.WarnLog.Printf("Cube map face %d has size %v while face 0 has size %v. Resizing\n", i, faces[i].Bounds().Size(), faceSize)
		faces[i] = transform.Resize(faces[i], faceSize.X, faceSize.Y, transform.Linear)
	}

	cmap := Cubemap{
		TexID: dev.GenTexture(),
	}

	dev.BindTexture(gpu.TextureTarget_CubeMap, cmap.TexID)

	for i := 0; i < len(faces); i++ {
		pixels, width, height := imageToRGBA8(faces[i], false)
		dev.TexImage2D(gpu.TextureTarget_CubeMap, i, gpu.TextureFormat_RGBA8, width, height, pixels)
	}

	dev.SetTextureParams(gpu.TextureTarget_CubeMap, gpu.TextureParams{
		MinFilter: gpu.TextureFilter_Linear,
		MagFilter: gpu.TextureFilter_Linear,
		WrapS:     gpu.TextureWrap_ClampToEdge,
		WrapT:     gpu.TextureWrap_ClampToEdge,
		WrapR:     gpu.TextureWrap_ClampToEdge,
	})

	dev.BindTexture(gpu.TextureTarget_CubeMap, 0)
	return cmap, nil
}

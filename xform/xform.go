// Package xform builds the affine matrices used for model, joint and light transforms.
//
// Matrices are gglm column-major (Data[col][row]) and compose like the GL fixed function
// matrix stack: Mul(a, b, c) applies c first, then b, then a.
package xform

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/chewxy/math32"
)

func Identity() gglm.Mat4 {
	return gglm.NewMat4Diag(1)
}

func Translation(x, y, z float32) gglm.Mat4 {
	m := gglm.NewMat4Diag(1)
	m.Data[3][0] = x
	m.Data[3][1] = y
	m.Data[3][2] = z
	return m
}

func TranslationVec(v *gglm.Vec3) gglm.Mat4 {
	return Translation(v.X(), v.Y(), v.Z())
}

func Scaling(x, y, z float32) gglm.Mat4 {
	m := gglm.NewMat4Diag(1)
	m.Data[0][0] = x
	m.Data[1][1] = y
	m.Data[2][2] = z
	return m
}

func RotationX(rads float32) gglm.Mat4 {
	s, c := math32.Sincos(rads)
	m := gglm.NewMat4Diag(1)
	m.Data[1][1] = c
	m.Data[1][2] = s
	m.Data[2][1] = -s
	m.Data[2][2] = c
	return m
}

func RotationY(rads float32) gglm.Mat4 {
	s, c := math32.Sincos(rads)
	m := gglm.NewMat4Diag(1)
	m.Data[0][0] = c
	m.Data[0][2] = -s
	m.Data[2][0] = s
	m.Data[2][2] = c
	return m
}

func RotationZ(rads float32) gglm.Mat4 {
	s, c := math32.Sincos(rads)
	m := gglm.NewMat4Diag(1)
	m.Data[0][0] = c
	m.Data[0][1] = s
	m.Data[1][0] = -s
	m.Data[1][1] = c
	return m
}

// Mul returns the product of all matrices, left to right
func Mul(mats ...gglm.Mat4) gglm.Mat4 {

	out := gglm.NewMat4Diag(1)
	for i := 0; i < len(mats); i++ {
		out.Mul(&mats[i])
	}

	return out
}

// TransformPoint returns m*(p,1) without the perspective divide, with w as the 4th value
func TransformPoint(m *gglm.Mat4, p *gglm.Vec3) (gglm.Vec3, float32) {

	var out [4]float32
	in := [4]float32{p.X(), p.Y(), p.Z(), 1}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row] += m.Data[col][row] * in[col]
		}
	}

	return gglm.NewVec3(out[0], out[1], out[2]), out[3]
}

// StripTranslation keeps only the upper 3x3 (rotation and scale) of m
func StripTranslation(m *gglm.Mat4) gglm.Mat4 {
	out := *m
	out.Data[3] = [4]float32{0, 0, 0, 1}
	out.Data[0][3] = 0
	out.Data[1][3] = 0
	out.Data[2][3] = 0
	return out
}

// InverseTranspose is used to carry normals through a model matrix
func InverseTranspose(m *gglm.Mat4) gglm.Mat4 {
	tr := gglm.TrMat{Mat4: *m}
	tr.InvertAndTranspose()
	return tr.Mat4
}

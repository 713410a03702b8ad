// Package scene uploads resolved glTF meshes to the GPU and renders them
// with a normal-mapped shader.
package scene

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfview/internal/engine/shader"
	"github.com/Faultbox/gltfview/internal/engine/texture"
	"github.com/Faultbox/gltfview/internal/logger"
	"github.com/Faultbox/gltfview/pkg/gltf"
	"github.com/Faultbox/gltfview/pkg/math"
)

// Scene renders the meshes of one loaded glTF session.
type Scene struct {
	program *shader.Program

	locMVP             int32
	locModel           int32
	locCameraPos       int32
	locLightDir        int32
	locBaseColorFactor int32
	locMetallic        int32
	locRoughness       int32
	locNormalScale     int32
	locHasNormalMap    int32
	locBaseColor       int32
	locNormalMap       int32

	meshes []*gpuMesh
	bounds Bounds

	whiteTex      uint32
	flatNormalTex uint32
	fallbackTex   uint32

	// LightDir is the world-space direction the light shines toward.
	LightDir [3]float32
}

// New compiles the mesh shader and creates the shared placeholder textures.
func New() (*Scene, error) {
	s := &Scene{
		LightDir: [3]float32{-0.4, -1, -0.6},
	}

	program, err := shader.Compile(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	s.program = program

	s.locMVP = program.Uniform("uMVP")
	s.locModel = program.Uniform("uModel")
	s.locCameraPos = program.Uniform("uCameraPos")
	s.locLightDir = program.Uniform("uLightDir")
	s.locBaseColorFactor = program.Uniform("uBaseColorFactor")
	s.locMetallic = program.Uniform("uMetallic")
	s.locRoughness = program.Uniform("uRoughness")
	s.locNormalScale = program.Uniform("uNormalScale")
	s.locHasNormalMap = program.Uniform("uHasNormalMap")
	s.locBaseColor = program.Uniform("uBaseColor")
	s.locNormalMap = program.Uniform("uNormalMap")

	s.whiteTex = uploadTexture(texture.White())
	s.flatNormalTex = uploadTexture(texture.FlatNormal())
	s.fallbackTex = uploadTexture(texture.Checkerboard(64, 8))

	gl.Enable(gl.DEPTH_TEST)
	return s, nil
}

// LoadSession resolves every mesh of the session and uploads it. Meshes that
// fail to resolve are logged and skipped; the scene renders whatever loaded.
func (s *Scene) LoadSession(sess *gltf.Session, baseDir string) error {
	s.clearMeshes()

	resolved, errs := sess.ResolveMeshes()
	for _, err := range errs {
		logger.Warn("skipping mesh", zap.Error(err))
	}
	if len(resolved) == 0 {
		return fmt.Errorf("no renderable meshes in document")
	}

	for _, data := range resolved {
		mesh := uploadMesh(data)
		s.applyMaterial(mesh, sess, data, baseDir)
		s.meshes = append(s.meshes, mesh)

		logger.Debug("mesh uploaded",
			zap.String("name", data.Name),
			zap.Int("vertices", data.VertexCount),
			zap.Bool("indexed", data.Indices != nil),
			zap.Bool("tangentsSynthesized", data.TangentsSynthesized),
		)
	}

	if b, ok := meshBounds(resolved); ok {
		s.bounds = b
	}

	logger.Info("scene loaded",
		zap.Int("meshes", len(s.meshes)),
		zap.Int("skipped", len(errs)),
	)
	return nil
}

// Bounds returns the world-space bounding box of the loaded meshes.
func (s *Scene) Bounds() Bounds {
	return s.bounds
}

// applyMaterial resolves the mesh's material and uploads its textures,
// falling back to placeholders when anything is missing or broken.
func (s *Scene) applyMaterial(mesh *gpuMesh, sess *gltf.Session, data *gltf.MeshData, baseDir string) {
	mesh.baseColorTex = s.whiteTex
	mesh.normalTex = s.flatNormalTex

	if data.Material < 0 {
		return
	}
	mat, err := sess.ResolveMaterial(data.Material)
	if err != nil {
		logger.Warn("material failed, using placeholder", zap.Int("material", data.Material), zap.Error(err))
		mesh.baseColorTex = s.fallbackTex
		return
	}

	mesh.baseColorFactor = mat.BaseColorFactor
	mesh.metallic = mat.MetallicFactor
	mesh.roughness = mat.RoughnessFactor
	mesh.normalScale = mat.NormalScale
	mesh.doubleSided = mat.DoubleSided

	if mat.BaseColor != nil {
		if tex, ok := s.loadTexture(sess, mat.BaseColor, baseDir); ok {
			mesh.baseColorTex = tex
			mesh.ownTextures = append(mesh.ownTextures, tex)
		} else {
			mesh.baseColorTex = s.fallbackTex
		}
	}
	if mat.Normal != nil {
		if tex, ok := s.loadTexture(sess, mat.Normal, baseDir); ok {
			mesh.normalTex = tex
			mesh.hasNormalMap = true
			mesh.ownTextures = append(mesh.ownTextures, tex)
		}
	}
}

// loadTexture decodes and uploads one texture, from the session's buffers or
// from a file next to the document.
func (s *Scene) loadTexture(sess *gltf.Session, r *gltf.TextureRange, baseDir string) (uint32, bool) {
	var data []byte
	if r.URI != "" {
		var err error
		data, err = os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(r.URI)))
		if err != nil {
			logger.Warn("reading texture file", zap.String("uri", r.URI), zap.Error(err))
			return 0, false
		}
	} else {
		data = sess.ImageBytes(r)
	}

	img, err := texture.Decode(data)
	if err != nil {
		logger.Warn("decoding texture", zap.String("mime", r.MIME), zap.Error(err))
		return 0, false
	}
	return uploadTexture(img), true
}

// uploadTexture creates a mipmapped GL texture from an RGBA image.
func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return texID
}

// Render draws every mesh. turntable rotates the whole model around Y, on
// top of each node's own transform.
func (s *Scene) Render(viewProj math.Mat4, cameraPos math.Vec3, turntable float32) {
	if len(s.meshes) == 0 {
		return
	}

	s.program.Use()
	shader.SetVec3(s.locCameraPos, [3]float32{cameraPos.X, cameraPos.Y, cameraPos.Z})
	shader.SetVec3(s.locLightDir, s.LightDir)
	shader.SetInt(s.locBaseColor, 0)
	shader.SetInt(s.locNormalMap, 1)

	spin := math.RotateY(turntable)

	for _, mesh := range s.meshes {
		model := spin.Mul(mesh.world)
		mvp := viewProj.Mul(model)
		shader.SetMat4(s.locMVP, mvp.Ptr())
		shader.SetMat4(s.locModel, model.Ptr())

		shader.SetVec4(s.locBaseColorFactor, mesh.baseColorFactor)
		shader.SetFloat(s.locMetallic, mesh.metallic)
		shader.SetFloat(s.locRoughness, mesh.roughness)
		shader.SetFloat(s.locNormalScale, mesh.normalScale)
		if mesh.hasNormalMap {
			shader.SetInt(s.locHasNormalMap, 1)
		} else {
			shader.SetInt(s.locHasNormalMap, 0)
		}

		if mesh.doubleSided {
			gl.Disable(gl.CULL_FACE)
		} else {
			gl.Enable(gl.CULL_FACE)
		}

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, mesh.baseColorTex)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, mesh.normalTex)

		mesh.draw()
	}

	gl.BindVertexArray(0)
}

func (s *Scene) clearMeshes() {
	for _, mesh := range s.meshes {
		mesh.destroy()
	}
	s.meshes = nil
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	s.clearMeshes()
	for _, tex := range []uint32{s.whiteTex, s.flatNormalTex, s.fallbackTex} {
		if tex != 0 {
			gl.DeleteTextures(1, &tex)
		}
	}
	if s.program != nil {
		s.program.Delete()
	}
}

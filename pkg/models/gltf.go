package models

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

// ErrNoGeometry is returned when a glTF document holds no triangles.
var ErrNoGeometry = errors.New("gltf has no triangle geometry")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// CalculateNormals fills in normals when the file has none.
	CalculateNormals bool
	// SmoothNormals averages the computed normals across shared vertices.
	SmoothNormals bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default options.
func LoadGLTF(path string) (*Mesh, *render.Texture, error) {
	return NewGLTFLoader().Load(path)
}

// Load merges every triangle primitive of the document into one mesh and
// returns it with the base colour texture of the first textured material.
// When no material has a texture, the first base colour factor becomes a
// solid texture. The texture is nil if the file carries neither.
func (l *GLTFLoader) Load(path string) (*Mesh, *render.Texture, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNoGeometry)
	}

	if l.CalculateNormals && !mesh.hasNormals() {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}
	mesh.CalculateBounds()

	tex, err := baseColorTexture(doc, filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	return mesh, tex, nil
}

// processMesh extracts geometry from a GLTF mesh. glTF is counter-clockwise
// with V=0 at the top of the image, which is what the renderer expects, so
// indices and UVs are taken as they are.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: vec3(p)}
			if i < len(normals) {
				v.Normal = vec3(normals[i])
			}
			if i < len(uvs) {
				v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{V: [3]int{
				base + int(indices[i]),
				base + int(indices[i+1]),
				base + int(indices[i+2]),
			}}
			if !validFace(f, len(mesh.Vertices)) {
				return fmt.Errorf("index out of range in face %d", i/3)
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

func validFace(f Face, n int) bool {
	for _, idx := range f.V {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

func vec3(f [3]float32) math3d.Vec3 {
	return math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
}

// baseColorTexture finds the first usable base colour of the document.
func baseColorTexture(doc *gltf.Document, dir string) (*render.Texture, error) {
	for _, mat := range doc.Materials {
		pbr := mat.PBRMetallicRoughness
		if pbr == nil || pbr.BaseColorTexture == nil {
			continue
		}
		tex, err := loadTexture(doc, pbr.BaseColorTexture.Index, dir)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", mat.Name, err)
		}
		if tex != nil {
			return tex, nil
		}
	}

	for _, mat := range doc.Materials {
		pbr := mat.PBRMetallicRoughness
		if pbr == nil || pbr.BaseColorFactor == nil {
			continue
		}
		f := pbr.BaseColorFactor
		return render.SolidTexture(color.RGBA{
			R: channel(f[0]),
			G: channel(f[1]),
			B: channel(f[2]),
			A: 255,
		}), nil
	}
	return nil, nil
}

func channel(f float64) uint8 {
	return uint8(math3d.Clamp(f, 0, 1)*255 + 0.5)
}

// loadTexture decodes the image behind texture index idx, embedded in a
// buffer view or stored next to the document.
func loadTexture(doc *gltf.Document, idx int, dir string) (*render.Texture, error) {
	if idx < 0 || idx >= len(doc.Textures) {
		return nil, fmt.Errorf("texture %d out of range", idx)
	}
	src := doc.Textures[idx].Source
	if src == nil || *src >= len(doc.Images) {
		return nil, nil
	}
	img := doc.Images[*src]

	switch {
	case img.BufferView != nil:
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("read image %d: %w", *src, err)
		}
		decoded, err := render.DecodeImage(bytes.NewReader(data), render.ImageFormat(img.MimeType))
		if err != nil {
			return nil, fmt.Errorf("decode image %d: %w", *src, err)
		}
		return render.TextureFromImage(decoded)
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("read image %d: %w", *src, err)
		}
		decoded, err := render.DecodeImage(bytes.NewReader(data), render.ImageFormat(img.MimeType))
		if err != nil {
			return nil, fmt.Errorf("decode image %d: %w", *src, err)
		}
		return render.TextureFromImage(decoded)
	case img.URI != "":
		return render.LoadTexture(filepath.Join(dir, img.URI))
	}
	return nil, nil
}

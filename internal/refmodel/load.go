package refmodel

import (
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"gopkg.in/yaml.v3"
)

// Manifest describes a reference model assembled from STL parts.
//
//	name: logo
//	scale: 1
//	parts:
//	  - name: ring-3
//	    file: ring3.stl
//	    translation: [0, 1.2, 0]
type Manifest struct {
	Name        string         `yaml:"name"`
	Translation [3]float32     `yaml:"translation"`
	Scale       float32        `yaml:"scale"`
	Parts       []ManifestPart `yaml:"parts"`
}

// ManifestPart is one STL file placed under the model root. File is relative to the manifest.
type ManifestPart struct {
	Name        string     `yaml:"name"`
	File        string     `yaml:"file"`
	Translation [3]float32 `yaml:"translation"`
	Scale       float32    `yaml:"scale"`
}

// Load reads a model manifest and every STL part it lists.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, essentials.AddCtx("load reference model", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, essentials.AddCtx("load reference model "+path, err)
	}

	root := &Node{
		Name:        m.Name,
		Translation: mgl32.Vec3(m.Translation),
		Scale:       m.Scale,
	}
	dir := filepath.Dir(path)
	for _, p := range m.Parts {
		mesh, err := readSTL(filepath.Join(dir, p.File))
		if err != nil {
			return nil, essentials.AddCtx("load part "+p.Name, err)
		}
		root.Children = append(root.Children, &Node{
			Name:        p.Name,
			Translation: mgl32.Vec3(p.Translation),
			Scale:       p.Scale,
			Mesh:        mesh,
		})
	}
	return root, nil
}

func readSTL(path string) (*model3d.Mesh, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	triangles, err := model3d.ReadSTL(r)
	if err != nil {
		return nil, essentials.AddCtx("read "+filepath.Base(path), err)
	}
	return model3d.NewMeshTriangles(triangles), nil
}

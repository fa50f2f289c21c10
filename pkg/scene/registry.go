package scene

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultSceneID is the scene the CLI renders when none is named
const DefaultSceneID = "random"

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Objects     int    `json:"objects"` // Object count of the scene as built with seed 0

	build func(seed uint64) *Scene
}

var builtins = []SceneInfo{
	{
		ID:          "random",
		Description: "Ray Tracing in One Weekend cover: random small spheres around three large ones",
		build:       NewRandomScene,
	},
	{
		ID:          "basic",
		Description: "Basic scene with spheres, hollow glass and plane ground",
		build:       func(uint64) *Scene { return NewDefaultScene() },
	},
	{
		ID:          "sphere-grid",
		Description: "20x20 grid of rainbow-colored metallic spheres",
		build:       func(uint64) *Scene { return NewSphereGridScene(20) },
	},
	{
		ID:          "three-spheres",
		Description: "Three flat-colored spheres on black, for traversal checks",
		build:       func(uint64) *Scene { return NewThreeSpheresScene() },
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtins))
	for i, info := range builtins {
		info.DisplayName = titleCase(info.ID)
		info.Objects = len(info.build(0).Objects)
		scenes[i] = info
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Lookup builds the scene registered under id. seed only affects scenes with
// a random layout.
func Lookup(id string, seed uint64) (*Scene, error) {
	for _, info := range builtins {
		if info.ID == id {
			return info.build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownScene, id, strings.Join(sceneIDs(), ", "))
}

func sceneIDs() []string {
	ids := make([]string, len(builtins))
	for i, info := range builtins {
		ids[i] = info.ID
	}
	sort.Strings(ids)
	return ids
}

// titleCase converts a filename-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}

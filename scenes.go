package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-live-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	writeSceneTable(os.Stdout, scene.ListScenes())
	return nil
}

func writeSceneTable(w io.Writer, scenes []scene.SceneInfo) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Objects", "Description"})
	for _, info := range scenes {
		id := info.ID
		if id == scene.DefaultSceneID {
			id += " (default)"
		}
		table.Append([]string{id, info.DisplayName, fmt.Sprintf("%d", info.Objects), info.Description})
	}
	table.Render()
	w.Write(buf.Bytes())
}

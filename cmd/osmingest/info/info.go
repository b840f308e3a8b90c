// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package info

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	osmium "github.com/Hailin-Plusai/libosmium"
	"github.com/Hailin-Plusai/libosmium/cmd/osmingest/cli"
	"github.com/Hailin-Plusai/libosmium/internal/iox"
	"github.com/Hailin-Plusai/libosmium/model"
)

var out io.Writer = os.Stdout

// extendedHeader is the resolved header plus, when -e/--extended is
// given, a scan of the whole document's entity counts by kind.
type extendedHeader struct {
	*model.Header

	NodeCount      int64
	WayCount       int64
	RelationCount  int64
	ChangesetCount int64
}

// inputFlag is set by init below and lets callers give the input file via
// -i/--input instead of (or in addition to) the positional argument.
var inputFlag *os.File

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.BoolP("extended", "e", false, "provide extended information (scans entire file)")
	flags.VarP(cli.NewReaderValue(os.Stdin, &inputFlag, "file"), "input", "i", "input file (alternative to the positional argument)")
}

var infoCmd = &cobra.Command{
	Use:   "info [<OSM XML file>]",
	Short: "Print information about an OSM XML/OsmChange file",
	Long:  "Print information about an OSM XML/OsmChange file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var f *os.File
		var err error
		name := "<stdin>"

		switch {
		case len(args) == 1:
			name = args[0]
			f, err = os.Open(name)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
		case inputFlag != os.Stdin:
			f = inputFlag
			name = f.Name()
			defer f.Close()
		default:
			f = os.Stdin
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		r, err := iox.OpenNamed(in, name)
		if err != nil {
			log.Fatal(err)
		}

		flags := cmd.Flags()

		extended, err := flags.GetBool("extended")
		if err != nil {
			log.Fatal(err)
		}

		info, err := runInfo(r, extended)
		if err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(info)
		} else {
			renderTxt(info, extended)
		}
	},
}

// runInfo streams r through the ingest core and returns its resolved
// header. When extended is false, entities are drained on a background
// goroutine and discarded so the Stream's parser task doesn't block on a
// full output channel after Header() returns without a reader present.
func runInfo(r io.Reader, extended bool) (*extendedHeader, error) {
	stream := osmium.Parse(context.Background(), r)

	header, err := stream.Header()
	if err != nil {
		return nil, err
	}

	info := &extendedHeader{Header: header}

	if !extended {
		go func() {
			for range stream.Entities() {
			}
		}()

		return info, nil
	}

	for res := range stream.Entities() {
		if res.Error != nil {
			return info, res.Error
		}

		switch res.Value.(type) {
		case *model.Node:
			info.NodeCount++
		case *model.Way:
			info.WayCount++
		case *model.Relation:
			info.RelationCount++
		case *model.Changeset:
			info.ChangesetCount++
		}
	}

	return info, nil
}

func renderJSON(info *extendedHeader) {
	b, err := json.Marshal(info)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintln(out, string(b))
}

func renderTxt(info *extendedHeader, extended bool) {
	version, _ := info.Get("version")
	generator, _ := info.Get("generator")

	fmt.Fprintf(out, "Version: %s\n", version)
	fmt.Fprintf(out, "Generator: %s\n", generator)
	fmt.Fprintf(out, "MultipleObjectVersions: %t\n", info.HasMultipleObjectVersions)

	boxes := make([]string, len(info.Boxes))
	for i, b := range info.Boxes {
		boxes[i] = b.String()
	}
	fmt.Fprintf(out, "Bounds: %s\n", strings.Join(boxes, ", "))

	if extended {
		fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
		fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
		fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
		fmt.Fprintf(out, "ChangesetCount: %s\n", humanize.Comma(info.ChangesetCount))
	}
}

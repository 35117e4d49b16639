// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"

	"girder/yosys2digitaljs/pkg/assemble"
	"girder/yosys2digitaljs/pkg/netlist"
	"girder/yosys2digitaljs/pkg/uimap"
	"girder/yosys2digitaljs/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "yosys2digitaljs",
	Short: "Converts a synthesizer JSON netlist into a digitaljs schematic.",
	Long:  "Converts a synthesizer's JSON netlist of a digital circuit into the device/connector graph an interactive schematic viewer consumes.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("yosys2digitaljs ")
			if Version != "" {
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("%s", info.Main.Version)
			} else {
				fmt.Printf("(unknown version)")
			}
			fmt.Println()

			return
		}

		if len(args) == 0 {
			fmt.Println("expected a synthesizer JSON netlist file")
			os.Exit(1)
		}

		runConvert(cmd, args[0])
	},
}

func runConvert(cmd *cobra.Command, filename string) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("reading %s: %s", filename, err)
	}

	nl, err := netlist.Parse(data)
	if err != nil {
		log.Fatalf("parsing %s: %s", filename, err)
	}

	if err := nl.Validate(); err != nil {
		log.Fatalf("validating %s: %s", filename, err)
	}

	stats := util.NewPerfStats()

	cfg := assemble.Config{
		TopModule: GetString(cmd, "top"),
		Strict:    GetFlag(cmd, "strict"),
	}

	result, err := assemble.Run(nl, cfg)
	if err != nil {
		log.Fatalf("converting %s: %s", filename, err)
	}

	stats.Log("Converting netlist")

	for _, w := range result.Warnings {
		log.Warn(w)
	}

	if !GetFlag(cmd, "no-ui") {
		uimap.Apply(result.Top)
	}

	out, err := json.MarshalIndent(result.Top, "", "  ")
	if err != nil {
		log.Fatalf("encoding output: %s", err)
	}

	if target := GetString(cmd, "output"); target != "" {
		if err := os.WriteFile(target, out, 0o644); err != nil {
			log.Fatalf("writing %s: %s", target, err)
		}

		return
	}

	fmt.Println(string(out))
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("no-ui", false, "skip the I/O UI mapper pass, leaving generic Input/Output devices")
	rootCmd.PersistentFlags().StringP("output", "o", "", "write the converted netlist to this file instead of stdout")
	rootCmd.PersistentFlags().String("top", "", "treat this module as the top module instead of selecting it automatically")
	rootCmd.PersistentFlags().Bool("strict", false, "treat undriven-net warnings as fatal")
}

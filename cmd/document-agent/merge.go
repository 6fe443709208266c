// Copyright 2026 Wuyi Zhangxiang
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package main

import "github.com/spf13/cobra"

var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "Merge chapter files back into a single markdown document",
	Long: `Merge concatenates the given markdown files in argument order, joined
by horizontal-rule separators. Inputs are validated before anything is
written, so a bad path leaves the output untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		request := map[string]any{
			"file_paths": args,
		}
		if output != "" {
			request["output_path"] = output
		}
		return runTool("markdown_merger", request)
	},
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "merged output path (default merged.md)")

	rootCmd.AddCommand(mergeCmd)
}

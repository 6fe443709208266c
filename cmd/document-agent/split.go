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

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Split a markdown file into per-chapter files on H1 boundaries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool("markdown_splitter", map[string]any{
			"file_path": args[0],
		})
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

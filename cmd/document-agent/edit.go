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

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Apply a batch of replace/insert/rewrite operations to a markdown file",
	Long: `Edit applies an ordered batch of operations to one markdown file. The
operation list is json5 (trailing commas and unquoted keys are fine), e.g.:

  [{type: "replace", target: "foo", content: "bar"},
   {type: "insert", target: "# Intro", content: "New line", position: "after"}]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		operations, _ := cmd.Flags().GetString("operations")
		operationsFile, _ := cmd.Flags().GetString("operations-file")

		if operations == "" && operationsFile == "" {
			return fmt.Errorf("one of --operations or --operations-file is required")
		}
		if operationsFile != "" {
			data, err := os.ReadFile(operationsFile)
			if err != nil {
				return err
			}
			operations = string(data)
		}

		// The operations payload is already json5; splice it into the
		// request rather than round-tripping it through encoding/json.
		params := fmt.Sprintf(`{"file_path": %q, "operations": %s}`, args[0], operations)
		response := toolkit.Call("markdown_editor", params)
		fmt.Println(response)
		if !isSuccess(response) {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	editCmd.Flags().String("operations", "", "operation list as json5")
	editCmd.Flags().String("operations-file", "", "file containing the operation list")

	rootCmd.AddCommand(editCmd)
}

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

var callCmd = &cobra.Command{
	Use:   "call <tool> <params>",
	Short: "Invoke a tool by name with a raw json5 request",
	Long: `Call invokes any registered tool directly, the way an orchestration
layer would. The params argument is json5, so trailing commas and unquoted
keys are accepted:

  document-agent call markdown_splitter '{file_path: "book.md"}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		response := toolkit.Call(args[0], args[1])
		fmt.Println(response)
		if !isSuccess(response) {
			os.Exit(1)
		}
		return nil
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tool names",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range toolkit.Tools() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(toolsCmd)
}

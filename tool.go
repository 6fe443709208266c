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

package docagent

import (
	"encoding/json"
	"fmt"

	"github.com/flynn/json5"
)

// Tool statuses reported in every response.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Tool is the interface all pipeline tools implement. Call takes a single
// structured-text request (json5: trailing commas and unquoted keys are
// permitted) and returns a JSON response that always carries a "status"
// field. Errors never escape Call; they are encoded into a failed response.
type Tool interface {
	Name() string
	Call(params string) string
}

// failedResponse is the uniform error payload for any tool failure.
type failedResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// failure encodes an error into a failed tool response.
func failure(err error) string {
	return encodeResponse(failedResponse{
		Error:  err.Error(),
		Status: StatusFailed,
	})
}

// encodeResponse marshals a response payload. Marshal failures degrade to a
// minimal hand-built failed response so Call always returns valid JSON.
func encodeResponse(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":%q,"status":%q}`, "encode response: "+err.Error(), StatusFailed)
	}
	return string(data)
}

// decodeParams parses a json5 request payload into v.
func decodeParams(params string, v any) error {
	if err := json5.Unmarshal([]byte(params), v); err != nil {
		return &InvalidArgumentError{Reason: fmt.Sprintf("invalid request: %v", err)}
	}
	return nil
}

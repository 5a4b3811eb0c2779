// Copyright 2026 The CPrime Authors
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

// Command cprimec is the front-end binary: an external collaborator over
// the stable pipeline core (spec.md §1), not part of it.
package main

import "os"

func main() {
	os.Exit(Main(os.Args[1:]))
}

// Main runs the root command and maps its outcome to spec.md §6's exit
// codes: 0 success, 1 a collected compilation diagnostic, 2 anything
// else (bad flags, I/O failure). A panic is not recovered here.
func Main(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case isCompilationError(err):
		return 1
	default:
		return 2
	}
}

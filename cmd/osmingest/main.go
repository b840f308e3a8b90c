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

// Command osmingest is a small CLI over the osmium ingest core, the
// XML-ingest equivalent of the teacher's "pbf info" subcommand.
package main

import (
	"log"

	"github.com/Hailin-Plusai/libosmium/cmd/osmingest/cli"
	_ "github.com/Hailin-Plusai/libosmium/cmd/osmingest/info"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

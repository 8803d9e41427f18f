/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package pkgmgr is the out-of-scope package-manager seam: a minimal
// manifest shape and a storage contract a caller can implement, modeled
// on the name/version/dependency fields of a C package manager's pkg
// struct. No parsing, no repository layout, no build orchestration is
// provided here — those are a caller's concern.
package pkgmgr

// Manifest describes one package: its name, version string, and the
// names of the packages it requires.
type Manifest struct {
	Name     string
	Version  string
	Requires []string
}

// Store loads and persists a Manifest at a caller-defined path. Callers
// supply the concrete encoding (TOML, JSON, or anything else); pkgmgr
// takes no position on it.
type Store interface {
	Load(path string) (*Manifest, error)
	Save(path string, m *Manifest) error
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core holds the application services shared by the binaries:
// configuration, logging and frame timing.
package core

// Destroyable is anything holding native resources
type Destroyable interface {
	// Destroy releases internal members
	Destroy()
}

// DestroyAll destroys every non nil item in reverse order
func DestroyAll(items ...Destroyable) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] != nil {
			items[i].Destroy()
		}
	}
}

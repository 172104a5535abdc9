// Copyright 2016 CoreOS, Inc
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

// Package lifecycle implements a pattern for shutting down a group of
// in-flight decode jobs together, adapted from coreos/pkg's stop package.
package lifecycle

import "sync"

// Stoppable represents anything that can be asked to stop, returning a
// channel closed once it has.
type Stoppable interface {
	Stop() <-chan struct{}
}

// StopperFunc is an alternative to implementing Stoppable.
type StopperFunc func() <-chan struct{}

// Group tracks many Stoppable jobs (e.g. one per concurrently decoding
// file, or one per in-flight HTTP request) so they can all be asked to
// drain at once on shutdown.
type Group struct {
	mu         sync.Mutex
	stoppables []StopperFunc
}

// NewGroup allocates an empty Group.
func NewGroup() *Group {
	return &Group{}
}

// Add registers a Stoppable with the group.
func (g *Group) Add(s Stoppable) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stoppables = append(g.stoppables, s.Stop)
}

// AddFunc registers a bare stop callback with the group.
func (g *Group) AddFunc(f StopperFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stoppables = append(g.stoppables, f)
}

// Stop asks every registered job to stop and returns a channel that closes
// once all of them have finished.
func (g *Group) Stop() <-chan struct{} {
	g.mu.Lock()
	stoppables := g.stoppables
	g.stoppables = nil
	g.mu.Unlock()

	waitChannels := make([]<-chan struct{}, 0, len(stoppables))
	for _, stop := range stoppables {
		ch := stop()
		if ch == nil {
			panic("lifecycle: Stoppable returned a nil channel from Stop")
		}
		waitChannels = append(waitChannels, ch)
	}

	done := make(chan struct{})
	go func() {
		for _, ch := range waitChannels {
			<-ch
		}
		close(done)
	}()
	return done
}

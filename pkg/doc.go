// Package pkg provides the core libraries for the webforce layout engine.
//
// # Overview
//
// Webforce arranges growing graphs with a force-directed particle
// simulation: nodes repel each other like point charges while
// parent/child links pull them together like damped springs. The pkg
// directory is organized into five main areas:
//
//  1. [physics] - The particle engine (charges, springs, integration, bounds)
//  2. [scale] - Reversible mapping between simulation units and pixels
//  3. [layout] - The facade: id lookup, display conversion, paced loop
//  4. [topology] - The (id, parent) event stream that grows a layout
//  5. [errors] / [observability] / [buildinfo] - Shell support
//
// # Architecture
//
// The typical data flow through webforce:
//
//	Topology events (id, parent)
//	         ↓
//	    [layout] package (id→particle mapping, pacing)
//	         ↓
//	    [physics] package (forces, integration, clamping)
//	         ↓
//	    [scale] package (simulation units → pixels)
//	         ↓
//	    Display coordinates per node
//
// # Quick Start
//
// Grow a small layout and run the paced loop:
//
//	engine := layout.New(layout.DefaultConfig())
//	engine.SetDisplayScale(800, 600, 15)
//	engine.AddNode("root", "")
//	engine.AddNode("child", "root")
//	engine.Run()
//	defer engine.Stop()
//	// read engine.AllCoordinates() once per frame
//
// # Error Handling
//
// The physics core never returns errors: invalid physical input is
// clamped or substituted with documented defaults so an unattended
// animation loop cannot stall. The shell packages (topology, the CLI
// config loader) return structured errors from [errors].
package pkg

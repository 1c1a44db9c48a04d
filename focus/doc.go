// Package focus keeps a camera's apparent magnification of a target constant
// while either moves.
//
// When a lock is enabled the engine records the ratio of the camera's focal
// length to its distance from the target's plane of focus. Every Tick then
// rescales the focal length so that ratio holds for the current geometry.
// Optional track-to constraints keep the camera aimed at its target, and the
// scene-wide shift lock counter-rotates the active camera as its lens shift
// changes.
//
// The engine owns no scene data. Everything it reads or writes goes through
// Host, which the scene package implements on top of an ECS world.
package focus

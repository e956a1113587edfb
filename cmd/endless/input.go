package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jim-ec/endless/internal/render"
)

const mouseSensitivity = 0.0025

func setupInputHandlers(window *glfw.Window, target *render.Camera, captured *bool) {
	firstMouse := true
	var lastX, lastY float64

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !*captured {
			return
		}
		if firstMouse {
			lastX, lastY = xpos, ypos
			firstMouse = false
		}
		dx := xpos - lastX
		dy := ypos - lastY
		lastX, lastY = xpos, ypos

		target.Yaw += float32(dx) * mouseSensitivity
		target.Pitch += float32(dy) * mouseSensitivity
		target.ClampPitch()
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			*captured = !*captured
			if *captured {
				w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
				firstMouse = true
			} else {
				w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
			}
		}
	})
}

// applyMovement flies the target camera from the currently held keys.
func applyMovement(window *glfw.Window, target *render.Camera, dt float32) {
	speed := float32(40)
	if window.GetKey(glfw.KeyLeftControl) == glfw.Press {
		speed *= 4
	}

	var dir mgl32.Vec3
	if window.GetKey(glfw.KeyW) == glfw.Press {
		dir = dir.Add(target.Forward())
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		dir = dir.Sub(target.Forward())
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		dir = dir.Add(target.Left())
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		dir = dir.Sub(target.Left())
	}
	if window.GetKey(glfw.KeySpace) == glfw.Press {
		dir = dir.Add(mgl32.Vec3{0, 0, 1})
	}
	if window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		dir = dir.Sub(mgl32.Vec3{0, 0, 1})
	}

	if dir.Len() > 0 {
		target.Position = target.Position.Add(dir.Normalize().Mul(speed * dt))
	}
}

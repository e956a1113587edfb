package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jim-ec/endless/internal/config"
	"github.com/jim-ec/endless/internal/graphics"
	"github.com/jim-ec/endless/internal/profiling"
	"github.com/jim-ec/endless/internal/render"
	"github.com/jim-ec/endless/internal/terrain"
	"github.com/jim-ec/endless/internal/world"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		panic(err)
	}

	renderer, err := graphics.NewRenderer()
	if err != nil {
		panic(err)
	}
	defer renderer.Dispose()

	gen := terrain.NewGenerator(config.GetSeed())
	w := world.New(gen, config.GetGenerationRadius(), config.GetLodShift(), config.GetWorkers())
	defer w.Close()

	// The target camera takes raw input; the drawn camera chases it for a
	// smoothed response.
	target := render.NewCamera()
	camera := *target

	captured := true
	setupInputHandlers(window, target, &captured)

	runLoop(window, renderer, w, &camera, target, &captured)
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(1280, 800, "endless", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}

	glfw.SwapInterval(1)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

func runLoop(window *glfw.Window, renderer *graphics.Renderer, w *world.World, camera, target *render.Camera, captured *bool) {
	frames := 0
	lastFPSCheckTime := time.Now()
	lastTime := time.Now()

	for !window.ShouldClose() {
		profiling.ResetFrame()
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if *captured {
			applyMovement(window, target, dt)
		}
		t := dt * 25
		if t > 1 {
			t = 1
		}
		camera.Interpolate(target, t)

		fresh := w.Update(camera.Position)
		renderer.Integrate(fresh)
		renderer.Prune(w.Resident())

		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		renderer.Clear()

		viewProj := camera.ProjMatrix(float32(width) / float32(height)).Mul4(camera.ViewMatrix())
		renderer.Draw(viewProj)

		frames++
		if time.Since(lastFPSCheckTime) >= time.Second {
			window.SetTitle(fmt.Sprintf("endless — %d fps, %d drawn / %d culled / %d resident",
				frames, renderer.Drawn, renderer.Culled, len(w.Resident())))
			if top := profiling.TopN(4); top != "" {
				fmt.Println(top)
			}
			frames = 0
			lastFPSCheckTime = time.Now()
		}

		func() { defer profiling.Track("glfw.SwapBuffers")(); window.SwapBuffers() }()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	}
}

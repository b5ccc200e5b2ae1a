package marcher

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/marcher/rt/core"
	"github.com/gekko3d/marcher/rt/shaders"
)

// FrameUniform is group 0 binding 1 of raymarch.wgsl. Size: 16 bytes.
type FrameUniform struct {
	ImageSize [2]float32
	Time      float32
	Pad       float32
}

// RaymarchModule draws the fractal raymarcher over the whole window from the
// camera's OrientationState. Requires TimeModule and FlyingCameraModule.
type RaymarchModule struct {
	ClearColor wgpu.Color
	// Shader overrides the embedded raymarch.wgsl. It must keep the same bindings.
	Shader string
}

type raymarchState struct {
	pipeline     *wgpu.RenderPipeline
	bindGroup    *wgpu.BindGroup
	cameraBuffer *wgpu.Buffer
	frameBuffer  *wgpu.Buffer
	clearColor   wgpu.Color

	cameraUniform core.CameraUniformRecord
	frameUniform  FrameUniform

	// set when this tick's uniforms reached the queue; the draw waits for it
	uniformsWritten bool
	log             Logger
}

func (mod RaymarchModule) Install(app *App, cmd *Commands) {
	log := app.Logger()
	ws := ensureWindowResource(app, 0, 0, "")

	gpuState, err := createGpuState(ws)
	if err != nil {
		log.Errorf("GPU init failed: %v", err)
		panic(err)
	}

	code := mod.Shader
	if code == "" {
		code = shaders.RaymarchWGSL
	}
	rs, err := createRaymarchState(code, gpuState, log)
	if err != nil {
		log.Errorf("Raymarch pipeline init failed: %v", err)
		panic(err)
	}
	rs.clearColor = mod.ClearColor
	log.Infof("Raymarch pipeline ready (%dx%d, %v)", ws.WindowWidth, ws.WindowHeight, gpuState.surfaceConfig.Format)

	cmd.AddResources(gpuState, rs)
	app.onClose(func() {
		rs.release()
		gpuState.release()
	})

	app.UseSystem(
		System(surfaceResizeSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(cameraUniformSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(raymarchRenderSystem).
			InStage(Render),
	)
}

func createRaymarchState(shaderCode string, gpuState *GpuState, log Logger) (*raymarchState, error) {
	pipeline, err := createFullscreenPipeline("Raymarch", shaderCode, gpuState)
	if err != nil {
		return nil, err
	}

	rs := &raymarchState{
		pipeline:      pipeline,
		cameraUniform: core.PackCameraUniform(core.NewOrientationState()),
		log:           log,
	}

	rs.cameraBuffer, err = createUniformBuffer("Camera Uniform", toBufferBytes(rs.cameraUniform), gpuState)
	if err != nil {
		return nil, err
	}
	rs.frameBuffer, err = createUniformBuffer("Frame Uniform", toBufferBytes(rs.frameUniform), gpuState)
	if err != nil {
		return nil, err
	}
	rs.bindGroup, err = createBindGroup(pipeline, gpuState.device, rs.cameraBuffer, rs.frameBuffer)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (rs *raymarchState) release() {
	rs.bindGroup.Release()
	rs.frameBuffer.Release()
	rs.cameraBuffer.Release()
	rs.pipeline.Release()
}

func surfaceResizeSystem(ws *WindowState, gpuState *GpuState, rs *raymarchState) {
	if ws.refreshSize() && gpuState.resize(ws.WindowWidth, ws.WindowHeight) {
		rs.log.Debugf("Surface resized to %dx%d", ws.WindowWidth, ws.WindowHeight)
	}
}

// cameraUniformSystem snapshots the camera and writes both uniform blocks. It runs
// in PreRender so the write is queued before this tick's draw.
func cameraUniformSystem(cam *core.OrientationState, time *Time, ws *WindowState, gpuState *GpuState, rs *raymarchState) {
	rs.cameraUniform = core.PackCameraUniform(cam)
	rs.frameUniform = FrameUniform{
		ImageSize: [2]float32{float32(ws.WindowWidth), float32(ws.WindowHeight)},
		Time:      time.Elapsed(),
	}

	rs.uniformsWritten = false
	if err := gpuState.queue.WriteBuffer(rs.cameraBuffer, 0, toBufferBytes(rs.cameraUniform)); err != nil {
		rs.log.Errorf("Camera uniform write failed: %v", err)
		return
	}
	if err := gpuState.queue.WriteBuffer(rs.frameBuffer, 0, toBufferBytes(rs.frameUniform)); err != nil {
		rs.log.Errorf("Frame uniform write failed: %v", err)
		return
	}
	rs.uniformsWritten = true
}

// renders single frame
func raymarchRenderSystem(ws *WindowState, gpuState *GpuState, rs *raymarchState) {
	if !rs.uniformsWritten || ws.WindowWidth <= 0 || ws.WindowHeight <= 0 {
		return
	}

	nextTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		rs.log.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		rs.log.Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		rs.log.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: rs.clearColor,
			},
		},
	})
	defer renderPass.Release()

	renderPass.SetPipeline(rs.pipeline)
	renderPass.SetBindGroup(0, rs.bindGroup, nil)
	renderPass.Draw(3, 1, 0, 0)

	if err = renderPass.End(); err != nil {
		rs.log.Errorf("Render pass failed: %v", err)
		return
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		rs.log.Errorf("Encoder finish failed: %v", err)
		return
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
	gpuState.surface.Present()
}

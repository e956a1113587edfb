package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/jim-ec/endless/internal/meshing"
	"github.com/jim-ec/endless/internal/profiling"
	"github.com/jim-ec/endless/internal/render"
	"github.com/jim-ec/endless/internal/world"
)

// chunkMesh is the GPU side of one resident chunk. A chunk whose mesh came
// out empty keeps an entry with no buffers so eviction bookkeeping stays
// uniform.
type chunkMesh struct {
	chunk *world.Chunk
	vao   uint32
	vbo   uint32
	count int32
}

// Renderer draws resident chunk meshes. All methods must run on the thread
// owning the GL context.
type Renderer struct {
	shader *Shader
	meshes map[world.ChunkCoord]*chunkMesh

	// Stats from the last Draw call.
	Drawn  int
	Culled int
}

func NewRenderer() (*Renderer, error) {
	shader, err := NewShader(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	shader.Use()
	sun := mgl32.Vec3{0.4, 0.3, 1}.Normalize()
	shader.SetVector3("sunDir", sun.X(), sun.Y(), sun.Z())
	shader.SetVector3("skyColor", skyR, skyG, skyB)
	shader.SetFloat("fogDensity", 0.0015)

	return &Renderer{
		shader: shader,
		meshes: make(map[world.ChunkCoord]*chunkMesh),
	}, nil
}

// Sky clear color, shared with the fog uniform.
const (
	skyR = 0.58
	skyG = 0.72
	skyB = 0.92
)

// Clear wipes the frame to the sky color.
func (r *Renderer) Clear() {
	gl.ClearColor(skyR, skyG, skyB, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Integrate uploads freshly built chunks, replacing any previous mesh at the
// same coordinate. A replacement at a different LOD frees the old buffers
// first.
func (r *Renderer) Integrate(fresh []*world.Chunk) {
	defer profiling.Track("renderer.Integrate")()

	for _, c := range fresh {
		if old, ok := r.meshes[c.Coord]; ok {
			old.release()
		}
		r.meshes[c.Coord] = upload(c)
	}
}

// Prune frees meshes for chunks that left the resident set.
func (r *Renderer) Prune(resident map[world.ChunkCoord]*world.Chunk) {
	for coord, m := range r.meshes {
		if _, ok := resident[coord]; !ok {
			m.release()
			delete(r.meshes, coord)
		}
	}
}

// Draw renders every resident mesh surviving the frustum test.
func (r *Renderer) Draw(viewProj mgl32.Mat4) {
	defer profiling.Track("renderer.Draw")()

	r.shader.Use()
	r.Drawn, r.Culled = 0, 0

	for _, m := range r.meshes {
		if m.count == 0 {
			continue
		}
		if !render.IsVisible(m.chunk, viewProj) {
			r.Culled++
			continue
		}
		mvp := viewProj.Mul4(m.chunk.Mesh.Placement.Matrix())
		r.shader.SetMatrix4("mvp", &mvp[0])
		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
		r.Drawn++
	}
	gl.BindVertexArray(0)
}

// Dispose frees all GPU resources.
func (r *Renderer) Dispose() {
	for coord, m := range r.meshes {
		m.release()
		delete(r.meshes, coord)
	}
	r.shader.Dispose()
}

func upload(c *world.Chunk) *chunkMesh {
	m := &chunkMesh{chunk: c, count: int32(c.Mesh.VertexCount)}
	if m.count == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(c.Mesh.Vertices)*4, gl.Ptr(c.Mesh.Vertices), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return m
}

func (m *chunkMesh) release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	m.count = 0
}

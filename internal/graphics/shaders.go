package graphics

// Chunk shader sources. Vertices arrive in chunk-local lattice coordinates;
// the placement is folded into the mvp uniform, so the shader itself never
// sees world space. Lighting is a fixed directional sun plus ambient, and a
// little distance fog blends far chunks into the sky.
const chunkVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 mvp;

out vec3 Normal;
out vec3 Color;
out float ClipDepth;

void main() {
    gl_Position = mvp * vec4(aPos, 1.0);
    Normal = aNormal;
    Color = aColor;
    ClipDepth = gl_Position.w;
}
`

const chunkFragmentShader = `#version 410 core
in vec3 Normal;
in vec3 Color;
in float ClipDepth;

uniform vec3 sunDir;
uniform vec3 skyColor;
uniform float fogDensity;

out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(Normal), sunDir), 0.0);
    vec3 lit = Color * (0.35 + 0.65 * diffuse);
    float fog = 1.0 - exp(-fogDensity * ClipDepth);
    FragColor = vec4(mix(lit, skyColor, fog), 1.0);
}
`

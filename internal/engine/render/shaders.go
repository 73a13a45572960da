package render

// Shared by terrain and models: one directional light, Blinn-Phong specular
// and linear distance fog.
const vertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uProjection * uView * world;
}
`

const fragmentShader = `#version 410 core
in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform int uTextured;
uniform vec3 uColor;
uniform vec3 uSpecular;

uniform vec3 uEye;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;

uniform vec3 uFogColor;
uniform float uFogNear;
uniform float uFogFar;

out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    vec3 l = normalize(-uLightDir);
    vec3 v = normalize(uEye - vWorldPos);
    vec3 h = normalize(l + v);

    vec3 base = uColor;
    if (uTextured == 1) {
        base *= texture(uTexture, vTexCoord).rgb;
    }

    float diff = max(dot(n, l), 0.0);
    float spec = diff > 0.0 ? pow(max(dot(n, h), 0.0), 16.0) : 0.0;
    vec3 color = base * (uAmbient + uDiffuse * diff) + uSpecular * spec;

    float dist = length(uEye - vWorldPos);
    float fog = clamp((dist - uFogNear) / (uFogFar - uFogNear), 0.0, 1.0);
    FragColor = vec4(mix(color, uFogColor, fog), 1.0);
}
`

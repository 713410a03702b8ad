package scene

// Vertex layout: 0 = position, 1 = normal, 2 = texcoord, 3 = tangent.
const meshVertexShader = `#version 410 core

layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aTexCoord;
layout(location = 3) in vec4 aTangent;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;
out vec4 vTangent;

void main() {
	vWorldPos = (uModel * vec4(aPosition, 1.0)).xyz;
	vNormal = mat3(uModel) * aNormal;
	vTexCoord = aTexCoord;
	vTangent = vec4(mat3(uModel) * aTangent.xyz, aTangent.w);
	gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

const meshFragmentShader = `#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;
in vec4 vTangent;

uniform vec3 uCameraPos;
uniform vec3 uLightDir;
uniform vec4 uBaseColorFactor;
uniform float uMetallic;
uniform float uRoughness;
uniform float uNormalScale;
uniform int uHasNormalMap;
uniform sampler2D uBaseColor;
uniform sampler2D uNormalMap;

out vec4 fragColor;

vec3 shadingNormal() {
	vec3 n = normalize(vNormal);
	if (uHasNormalMap == 0) {
		return n;
	}
	vec3 t = normalize(vTangent.xyz);
	// Re-orthogonalize after interpolation.
	t = normalize(t - n * dot(n, t));
	vec3 b = cross(n, t) * vTangent.w;
	vec3 sampled = texture(uNormalMap, vTexCoord).xyz * 2.0 - 1.0;
	sampled.xy *= uNormalScale;
	return normalize(mat3(t, b, n) * sampled);
}

void main() {
	vec4 base = texture(uBaseColor, vTexCoord) * uBaseColorFactor;
	vec3 n = shadingNormal();
	vec3 l = normalize(-uLightDir);
	vec3 v = normalize(uCameraPos - vWorldPos);
	vec3 h = normalize(l + v);

	float ndl = max(dot(n, l), 0.0);
	float shininess = mix(64.0, 4.0, uRoughness);
	float spec = pow(max(dot(n, h), 0.0), shininess) * mix(0.2, 0.8, uMetallic);

	vec3 ambient = vec3(0.15);
	vec3 color = base.rgb * (ambient + ndl) + vec3(spec) * ndl;
	fragColor = vec4(color, base.a);
}
`

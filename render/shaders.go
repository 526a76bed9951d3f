package render

// vertex layout: location 0 = position, 1 = texture coordinate, 2 = normal
var defaultVertexShader = `
#version 330 core

layout (location = 0) in vec3 vertexPosition;
layout (location = 1) in vec2 vertexTexCoord;
layout (location = 2) in vec3 vertexNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec2 fragmentTexCoord;
out vec3 fragmentNormal;

void main() {
	fragmentTexCoord = vertexTexCoord;
	fragmentNormal = mat3(transpose(inverse(model))) * vertexNormal;
	gl_Position = projection * view * model * vec4(vertexPosition, 1.0);
}
` + "\x00"

var defaultFragmentShader = `
#version 330 core

in vec2 fragmentTexCoord;
in vec3 fragmentNormal;

uniform sampler2D surface;
uniform int hasSurface;

out vec4 fragmentColor;

void main() {
	if (hasSurface == 1) {
		fragmentColor = texture(surface, fragmentTexCoord);
	} else {
		// untextured fallback: shade by normal so the shape stays readable
		fragmentColor = vec4(normalize(fragmentNormal) * 0.5 + 0.5, 1.0);
	}
}
` + "\x00"

package render

import (
	"errors"
	"strings"

	"github.com/bloeys/tessera/internal/engineerr"
	"github.com/go-gl/gl/v3.3-core/gl"
)

const backgroundVertSrc = `
#version 330 core

in vec2 vertPos;
in vec4 vertColor;

uniform mat4 projection;

out vec4 passColor;

void main() {
	gl_Position = projection * vec4(vertPos, 0.0, 1.0);
	passColor = vertColor;
}
` + "\x00"

// The background pass ignores the texture channel and the alpha it
// carries; its quads are flat fills.
const backgroundFragSrc = `
#version 330 core

in vec4 passColor;
out vec4 outColor;

void main() {
	outColor = vec4(passColor.rgb, 1.0);
}
` + "\x00"

const foregroundVertSrc = `
#version 330 core

in vec2 vertPos;
in vec4 vertColor;
in vec2 vertUV;

uniform mat4 projection;

out vec4 passColor;
out vec2 passUV;

void main() {
	gl_Position = projection * vec4(vertPos, 0.0, 1.0);
	passColor = vertColor;
	passUV = vertUV;
}
` + "\x00"

// Glyphs are baked white on black, so the red channel doubles as the
// coverage mask.
const foregroundFragSrc = `
#version 330 core

in vec4 passColor;
in vec2 passUV;

uniform sampler2D atlas;

out vec4 outColor;

void main() {
	vec4 s = texture(atlas, passUV);
	outColor = vec4(passColor.rgb, passColor.a * s.r);
}
` + "\x00"

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	cSrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, cSrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := shaderLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, engineerr.New(engineerr.KindShaderCompileError, errors.New(log))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := shaderLog(prog, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(prog)
		return 0, engineerr.New(engineerr.KindShaderLinkError, errors.New(log))
	}
	return prog, nil
}

func shaderLog(obj uint32, getIV func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var logLen int32
	getIV(obj, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "no info log"
	}

	log := strings.Repeat("\x00", int(logLen+1))
	getLog(obj, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func attribLocation(prog uint32, name string) (uint32, error) {
	loc := gl.GetAttribLocation(prog, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, engineerr.New(engineerr.KindAttribNotFound, errors.New(name))
	}
	return uint32(loc), nil
}

func uniformLocation(prog uint32, name string) (int32, error) {
	loc := gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, engineerr.New(engineerr.KindUniformNotFound, errors.New(name))
	}
	return loc, nil
}

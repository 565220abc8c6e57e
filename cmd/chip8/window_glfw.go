package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"

	"github.com/p47t/chip8/v2/driver"
)

// glfwHost paints into a window-sized RGBA image and shows it as a texture
// stretched over a fullscreen triangle.
type glfwHost struct {
	window *glfw.Window
	frame  *image.RGBA

	fullScreenTriangleVAO uint32
	frameTexture          uint32
	shaderProgram         uint32
}

const vertexShader = `
#version 330

noperspective out vec2 TexCoord;

void main(void) {
	TexCoord.x = (gl_VertexID == 2)? 2.0: 0.0;
	TexCoord.y = (gl_VertexID == 1)? 2.0: 0.0;

	gl_Position = vec4(2.0 * TexCoord - 1.0, 0.0, 1.0);
}
` + "\x00"

// The image is stored top row first, GL samples bottom row first.
const fragmentShader = `
#version 330

uniform sampler2D frame;
noperspective in vec2 TexCoord;

out vec3 outColor;

void main(void) {
	outColor = texture(frame, vec2(TexCoord.x, 1.0 - TexCoord.y)).rgb;
}
` + "\x00"

var glfwKeys = map[glfw.Key]driver.HostKey{
	glfw.Key1:      driver.HostKey1,
	glfw.Key2:      driver.HostKey2,
	glfw.Key3:      driver.HostKey3,
	glfw.Key4:      driver.HostKey4,
	glfw.KeyQ:      driver.HostKeyQ,
	glfw.KeyW:      driver.HostKeyW,
	glfw.KeyE:      driver.HostKeyE,
	glfw.KeyR:      driver.HostKeyR,
	glfw.KeyA:      driver.HostKeyA,
	glfw.KeyS:      driver.HostKeyS,
	glfw.KeyD:      driver.HostKeyD,
	glfw.KeyF:      driver.HostKeyF,
	glfw.KeyZ:      driver.HostKeyZ,
	glfw.KeyX:      driver.HostKeyX,
	glfw.KeyC:      driver.HostKeyC,
	glfw.KeyV:      driver.HostKeyV,
	glfw.KeySpace:  driver.HostKeySpace,
	glfw.KeyEscape: driver.HostKeyEscape,
}

func newGLFWHost(cfg driver.Config) (*glfwHost, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %v", err)
	}

	width, height := cfg.WindowSize()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	window, err := glfw.CreateWindow(width, height, driver.WindowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	// Present blocks on the vertical blank.
	glfw.SwapInterval(1)

	// A key pressed and released between two polls still reads as pressed
	// once.
	window.SetInputMode(glfw.StickyKeysMode, glfw.True)

	h := &glfwHost{
		window: window,
		frame:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	if err := h.initGL(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}
	return h, nil
}

func (h *glfwHost) initGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize opengl: %v", err)
	}

	gl.GenVertexArrays(1, &h.fullScreenTriangleVAO)
	gl.BindVertexArray(h.fullScreenTriangleVAO)

	vs, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fs)

	h.shaderProgram = gl.CreateProgram()
	gl.AttachShader(h.shaderProgram, vs)
	gl.AttachShader(h.shaderProgram, fs)
	gl.LinkProgram(h.shaderProgram)
	gl.DetachShader(h.shaderProgram, vs)
	gl.DetachShader(h.shaderProgram, fs)

	var status int32
	gl.GetProgramiv(h.shaderProgram, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return fmt.Errorf("failed to link shader program")
	}

	bounds := h.frame.Bounds()
	gl.GenTextures(1, &h.frameTexture)
	gl.BindTexture(gl.TEXTURE_2D, h.frameTexture)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(bounds.Dx()), int32(bounds.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(h.frame.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.UseProgram(h.shaderProgram)
	frameLoc := gl.GetUniformLocation(h.shaderProgram, gl.Str("frame\x00"))
	gl.Uniform1i(frameLoc, 0)

	gl.Disable(gl.DEPTH_TEST)
	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}

	return shader, nil
}

func (h *glfwHost) Poll() (driver.KeySet, bool) {
	glfw.PollEvents()

	keys := driver.FoldKeys(glfwKeys, func(k glfw.Key) bool {
		return h.window.GetKey(k) == glfw.Press
	})
	if keys.Has(driver.HostKeyEscape) {
		h.window.SetShouldClose(true)
	}
	return keys, !h.window.ShouldClose()
}

func (h *glfwHost) Clear(c color.RGBA) {
	draw.Draw(h.frame, h.frame.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (h *glfwHost) FillRect(r image.Rectangle, c color.RGBA) {
	draw.Draw(h.frame, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (h *glfwHost) Present() error {
	fbw, fbh := h.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	bounds := h.frame.Bounds()
	gl.BindTexture(gl.TEXTURE_2D, h.frameTexture)
	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		int32(bounds.Dx()), int32(bounds.Dy()), gl.RGBA, gl.UNSIGNED_BYTE,
		gl.Ptr(h.frame.Pix))

	gl.BindVertexArray(h.fullScreenTriangleVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	h.window.SwapBuffers()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl error 0x%x", code)
	}
	return nil
}

func (h *glfwHost) Close() error {
	gl.DeleteVertexArrays(1, &h.fullScreenTriangleVAO)
	gl.DeleteTextures(1, &h.frameTexture)
	gl.DeleteProgram(h.shaderProgram)
	h.window.Destroy()
	glfw.Terminate()
	return nil
}

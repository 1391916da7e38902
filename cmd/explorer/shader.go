package main

import (
	_ "embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	fractal "github.com/marben/fractal_explorer"
)

//go:embed shader.kage
var shaderSrc []byte

// maxShaderLimit is the loop bound compiled into the shader.
const maxShaderLimit = 1024

func newShader() (*ebiten.Shader, error) {
	s, err := ebiten.NewShader(shaderSrc)
	if err != nil {
		return nil, fmt.Errorf("ebiten.NewShader: %w", err)
	}
	return s, nil
}

// shaderUniforms extends the parameter block with what the shader needs to
// map pixels and bound the iteration.
func shaderUniforms(p fractal.Params, w, h int, cfg fractal.EscapeConfig) map[string]any {
	cfg = cfg.Normalize()
	u := p.Uniforms()
	u["Size"] = []float32{float32(w), float32(h)}
	u["Limit"] = float32(min(cfg.Limit, maxShaderLimit))
	u["RadiusSq"] = float32(cfg.RadiusSq)
	return u
}

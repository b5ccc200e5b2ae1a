package shaders

import (
	_ "embed"
)

//go:embed raymarch.wgsl
var RaymarchWGSL string

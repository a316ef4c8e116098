package renderer

// Uniform names shared with the shaders in res/shaders
const (
	Unif_Projection      = "Projection"
	Unif_ViewMatrix      = "ViewMatrix"
	Unif_ModelMatrix     = "ModelMatrix"
	Unif_TIModelMatrix   = "TIModelMatrix"
	Unif_LightViewMatrix = "LightViewMatrix"
	Unif_ViewPos         = "viewPos"
	Unif_FakeLightPos    = "fakeLightPos"

	Unif_DirLightDirection = "dl.direction"
	Unif_DirLightAmbient   = "dl.ambient"
	Unif_DirLightDiffuse   = "dl.diffuse"
	Unif_DirLightSpecular  = "dl.specular"

	Unif_EnableShadow = "enableShadow"
	Unif_ShadowMap    = "shadowMap"
	Unif_OurTexture   = "ourTexture"
	Unif_Skybox       = "skybox"

	Unif_ColorBuffer         = "colorBuffer"
	Unif_EnableEdgeDetection = "enableEdgeDetection"
	Unif_EnableGrayscale     = "enableGrayscale"
)

// Shader files looked up in Options.ShaderDir
const (
	ShaderFile_Shadow      = "shadow.glsl"
	ShaderFile_Skybox      = "skybox.glsl"
	ShaderFile_ShadowLight = "shadow_light.glsl"
	ShaderFile_Filter      = "filter.glsl"
)

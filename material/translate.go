package material

import "github.com/daoo/pathtracer-sub000/math"

// Desc is the flat, textureless material description a loader produces
// directly from a Wavefront MTL record (or an equivalent glTF
// PBRMetallicRoughness factor set). Translate builds the layered BRDF
// hierarchy from it.
type Desc struct {
	Name string

	Diffuse  math.Vec3 // Kd
	Specular math.Vec3 // Ks

	Transparency      float32 // Tr / (1 - d)
	IndexOfRefraction float32 // Ni

	// Reflectance at normal and grazing incidence for the Fresnel blend
	// layer, recovered from the MTL extension's reflat0deg/reflat90deg.
	// A loader with no such data leaves both at their zero value, which
	// drops the Fresnel layer and leaves just the transparency layer
	// (Diffuse, SpecularRefraction or their Blend) below.
	Refl0, Refl90 float32
}

// Translate builds Blend(Refl90, Fresnel(SpecularReflection(Specular),
// inner, Refl0), inner) where inner is Blend(Transparency,
// SpecularRefraction(IndexOfRefraction), Diffuse(Diffuse)), collapsing
// either Blend whose weight is exactly 0 or 1 to just the surviving
// child. The FresnelBlend is kept whatever Refl0 is.
func Translate(desc Desc) Material {
	var inner Material
	switch desc.Transparency {
	case 1:
		inner = SpecularRefraction{IndexOfRefraction: desc.IndexOfRefraction}
	case 0:
		inner = Diffuse{Reflectance: desc.Diffuse}
	default:
		inner = Blend{
			First:  SpecularRefraction{IndexOfRefraction: desc.IndexOfRefraction},
			Second: Diffuse{Reflectance: desc.Diffuse},
			Weight: desc.Transparency,
		}
	}

	switch desc.Refl90 {
	case 1:
		return FresnelBlend{
			Reflection: SpecularReflection{Reflectance: desc.Specular},
			Refraction: inner,
			R0:         desc.Refl0,
		}
	case 0:
		return inner
	default:
		return Blend{
			First: FresnelBlend{
				Reflection: SpecularReflection{Reflectance: desc.Specular},
				Refraction: inner,
				R0:         desc.Refl0,
			},
			Second: inner,
			Weight: desc.Refl90,
		}
	}
}

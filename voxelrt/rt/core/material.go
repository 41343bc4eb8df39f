package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Payload layout: [31:28] material index, [27:24] material type, [23:0] RGB.
const (
	IndexMask uint32 = 0xF0000000
	TypeMask  uint32 = 0x0F000000
	ColorMask uint32 = 0x00FFFFFF

	indexShift = 28
	typeShift  = 24

	MaxMaterials = 16
)

type MaterialType uint32

const (
	Air MaterialType = iota
	NonMetal
	Metal
	Glass
	Water
	BrightGlass
	Emissive
)

func (t MaterialType) String() string {
	switch t {
	case Air:
		return "air"
	case NonMetal:
		return "non-metal"
	case Metal:
		return "metal"
	case Glass:
		return "glass"
	case Water:
		return "water"
	case BrightGlass:
		return "bright-glass"
	case Emissive:
		return "emissive"
	}
	return fmt.Sprintf("material(%d)", uint32(t))
}

// MaterialIndex returns the index into a MaterialList encoded in payload.
func MaterialIndex(payload uint32) uint32 {
	return (payload & IndexMask) >> indexShift
}

// MaterialTypeOf returns the material type encoded in payload.
func MaterialTypeOf(payload uint32) MaterialType {
	return MaterialType((payload & TypeMask) >> typeShift)
}

// Albedo extracts the RGB color of a payload as floats in [0,1].
func Albedo(payload uint32) mgl32.Vec3 {
	const inv = 1.0 / 255.0
	r := (payload & 0x00FF0000) >> 16
	g := (payload & 0x0000FF00) >> 8
	b := payload & 0x000000FF
	return mgl32.Vec3{float32(r) * inv, float32(g) * inv, float32(b) * inv}
}

type Material struct {
	Roughness           float32
	IOR                 float32
	AbsorptionIntensity float32
	EmissiveIntensity   float32
}

// MaterialList hands out packed material bits. Index 0 is always air.
type MaterialList struct {
	Materials []Material
}

func NewMaterialList() *MaterialList {
	l := &MaterialList{}
	l.add(Material{IOR: 1.0}, Air)
	return l
}

func (l *MaterialList) AddNonMetal(roughness float32) uint32 {
	return l.add(Material{Roughness: roughness, IOR: 1.0}, NonMetal)
}

func (l *MaterialList) AddMetal(roughness float32) uint32 {
	return l.add(Material{Roughness: roughness, IOR: 1.0}, Metal)
}

func (l *MaterialList) AddGlass(ior, absorption float32) uint32 {
	return l.add(Material{IOR: ior, AbsorptionIntensity: absorption}, Glass)
}

func (l *MaterialList) AddWater(ior, absorption float32) uint32 {
	return l.add(Material{IOR: ior, AbsorptionIntensity: absorption}, Water)
}

func (l *MaterialList) AddBrightGlass(ior, absorption, emissive float32) uint32 {
	return l.add(Material{IOR: ior, AbsorptionIntensity: absorption, EmissiveIntensity: emissive}, BrightGlass)
}

func (l *MaterialList) AddEmissive(emissive float32) uint32 {
	return l.add(Material{IOR: 1.0, EmissiveIntensity: emissive}, Emissive)
}

// Lookup returns the material a payload refers to.
func (l *MaterialList) Lookup(payload uint32) Material {
	return l.Materials[MaterialIndex(payload)]
}

func (l *MaterialList) add(m Material, t MaterialType) uint32 {
	if len(l.Materials) >= MaxMaterials {
		panic(fmt.Sprintf("material list is full (%d entries)", MaxMaterials))
	}
	l.Materials = append(l.Materials, m)
	return PackMaterial(uint32(len(l.Materials)-1), t)
}

// PackMaterial builds the index|type bits of a payload.
func PackMaterial(index uint32, t MaterialType) uint32 {
	return (index<<indexShift)&IndexMask | (uint32(t)<<typeShift)&TypeMask
}

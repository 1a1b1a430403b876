package toolchain

// FamilyKind is the toolchain implementation a descriptor is built on.
type FamilyKind string

// Family kinds.
const (
	KindGCC       FamilyKind = "gcc"
	KindVisualCpp FamilyKind = "visualcpp"
	KindClang     FamilyKind = "clang"
)

// Family supplies the default executables for a toolchain kind and the roles
// every target of that kind must be able to fill.
type Family struct {
	Kind     FamilyKind
	Defaults map[Role]string
	Required []Role
}

// GCC is the GNU-compatible family.
var GCC = Family{
	Kind: KindGCC,
	Defaults: map[Role]string{
		RoleCCompiler:       "gcc",
		RoleCppCompiler:     "g++",
		RoleLinker:          "g++",
		RoleAssembler:       "as",
		RoleArchiver:        "ar",
		RoleStripper:        "strip",
		RoleSymbolExtractor: "objcopy",
	},
	Required: Roles(),
}

// Clang is the LLVM family.
var Clang = Family{
	Kind: KindClang,
	Defaults: map[Role]string{
		RoleCCompiler:       "clang",
		RoleCppCompiler:     "clang++",
		RoleLinker:          "clang++",
		RoleAssembler:       "clang",
		RoleArchiver:        "ar",
		RoleStripper:        "strip",
		RoleSymbolExtractor: "objcopy",
	},
	Required: Roles(),
}

// VisualCpp is the vendor C++ family. It has no stripper or symbol extractor;
// debug info lives in separate PDB files.
var VisualCpp = Family{
	Kind: KindVisualCpp,
	Defaults: map[Role]string{
		RoleCCompiler:   "cl.exe",
		RoleCppCompiler: "cl.exe",
		RoleLinker:      "link.exe",
		RoleAssembler:   "ml64.exe",
		RoleArchiver:    "lib.exe",
	},
	Required: []Role{RoleCCompiler, RoleCppCompiler, RoleLinker, RoleAssembler, RoleArchiver},
}

// FamilyFor returns the built-in family for kind.
func FamilyFor(kind FamilyKind) (Family, bool) {
	switch kind {
	case KindGCC:
		return GCC, true
	case KindClang:
		return Clang, true
	case KindVisualCpp:
		return VisualCpp, true
	default:
		return Family{}, false
	}
}

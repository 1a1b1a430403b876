package toolchain

// Role is the job an executable performs within a toolchain.
type Role string

// Tool roles.
const (
	RoleCCompiler       Role = "c-compiler"
	RoleCppCompiler     Role = "cpp-compiler"
	RoleLinker          Role = "linker"
	RoleAssembler       Role = "assembler"
	RoleArchiver        Role = "archiver"
	RoleStripper        Role = "stripper"
	RoleSymbolExtractor Role = "symbol-extractor"
)

// Roles returns every role in display order.
func Roles() []Role {
	return []Role{
		RoleCCompiler,
		RoleCppCompiler,
		RoleLinker,
		RoleAssembler,
		RoleArchiver,
		RoleStripper,
		RoleSymbolExtractor,
	}
}

// CompilerRoles are the roles that receive compiler argument rules:
// both compilers and the compiler driver used as linker.
func CompilerRoles() []Role {
	return []Role{RoleCCompiler, RoleCppCompiler, RoleLinker}
}

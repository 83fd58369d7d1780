package symbols

// DefaultVersions is the recognized conditional-compilation identifier set
// used when Options.Versions is nil. A version block whose condition is not
// in the active set is pruned outright; no else branch is ever substituted.
var DefaultVersions = []string{
	"AArch64",
	"AIX",
	"all",
	"Android",
	"ARM",
	"assert",
	"BigEndian",
	"Cygwin",
	"D_HardFloat",
	"D_InlineAsm_X86",
	"D_InlineAsm_X86_64",
	"D_LP64",
	"D_SIMD",
	"D_Version2",
	"DigitalMars",
	"DragonFlyBSD",
	"FreeBSD",
	"GNU",
	"Haiku",
	"Hurd",
	"LDC",
	"linux",
	"LittleEndian",
	"MinGW",
	"NetBSD",
	"OpenBSD",
	"OSX",
	"Posix",
	"Solaris",
	"unittest",
	"Win32",
	"Win64",
	"Windows",
	"X86",
	"X86_64",
}

func versionSet(versions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		set[v] = struct{}{}
	}
	return set
}

package ast

// Protection is the declared accessibility level of a declaration.
type Protection uint8

const (
	ProtectionNone Protection = iota // no explicit attribute present
	ProtectionPrivate
	ProtectionPackage
	ProtectionProtected
	ProtectionPublic
	ProtectionExport
)

func (p Protection) String() string {
	switch p {
	case ProtectionPrivate:
		return "private"
	case ProtectionPackage:
		return "package"
	case ProtectionProtected:
		return "protected"
	case ProtectionPublic:
		return "public"
	case ProtectionExport:
		return "export"
	default:
		return "default"
	}
}

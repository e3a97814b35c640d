package apimodel

// Kind is the declaration kind of an Item.
type Kind string

const (
	KindCallSignature      Kind = "CallSignature"
	KindClass              Kind = "Class"
	KindConstructSignature Kind = "ConstructSignature"
	KindConstructor        Kind = "Constructor"
	KindEntryPoint         Kind = "EntryPoint"
	KindEnum               Kind = "Enum"
	KindEnumMember         Kind = "EnumMember"
	KindFunction           Kind = "Function"
	KindIndexSignature     Kind = "IndexSignature"
	KindInterface          Kind = "Interface"
	KindMethod             Kind = "Method"
	KindMethodSignature    Kind = "MethodSignature"
	KindModel              Kind = "Model"
	KindModule             Kind = "Module"
	KindNamespace          Kind = "Namespace"
	KindPackage            Kind = "Package"
	KindProperty           Kind = "Property"
	KindPropertySignature  Kind = "PropertySignature"
	KindTypeAlias          Kind = "TypeAlias"
	KindVariable           Kind = "Variable"

	// KindNone is used for descriptor kinds this model does not know.
	KindNone Kind = "None"
)

var knownKinds = map[Kind]bool{
	KindCallSignature: true, KindClass: true, KindConstructSignature: true, KindConstructor: true,
	KindEntryPoint: true, KindEnum: true, KindEnumMember: true, KindFunction: true,
	KindIndexSignature: true, KindInterface: true, KindMethod: true, KindMethodSignature: true,
	KindModel: true, KindModule: true, KindNamespace: true, KindPackage: true,
	KindProperty: true, KindPropertySignature: true, KindTypeAlias: true, KindVariable: true,
}

// ParseKind maps a descriptor kind string to a Kind, falling back to KindNone.
func ParseKind(s string) Kind {
	k := Kind(s)
	if knownKinds[k] {
		return k
	}
	return KindNone
}

// Kinds returns every known kind (KindNone excluded) in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindCallSignature, KindClass, KindConstructSignature, KindConstructor, KindEntryPoint,
		KindEnum, KindEnumMember, KindFunction, KindIndexSignature, KindInterface, KindMethod,
		KindMethodSignature, KindModel, KindModule, KindNamespace, KindPackage, KindProperty,
		KindPropertySignature, KindTypeAlias, KindVariable,
	}
}

// IsCallable reports whether items of this kind carry a parameter list.
func (k Kind) IsCallable() bool {
	switch k {
	case KindFunction, KindMethod, KindMethodSignature, KindConstructor,
		KindConstructSignature, KindCallSignature, KindIndexSignature:
		return true
	}
	return false
}

// HasTypeExcerpt reports whether the kind exposes a declared type instead of a @returns block.
func (k Kind) HasTypeExcerpt() bool {
	return k == KindTypeAlias || k == KindVariable
}

package symbols

// Implicit members contributed by the language's default object model.
// Aggregate kinds receive aggregateParts; classes additionally receive
// classParts; enums receive enumParts.

var aggregateParts = []Part{
	{Name: "init", Kind: CompletionKeyword},
	{Name: "sizeof", Kind: CompletionKeyword},
	{Name: "alignof", Kind: CompletionKeyword},
	{Name: "mangleof", Kind: CompletionKeyword},
	{Name: "stringof", Kind: CompletionKeyword},
	{Name: "tupleof", Kind: CompletionKeyword},
}

var classParts = []Part{
	{Name: "toString", Kind: CompletionFunctionName},
	{Name: "toHash", Kind: CompletionFunctionName},
	{Name: "opCmp", Kind: CompletionFunctionName},
	{Name: "opEquals", Kind: CompletionFunctionName},
	{Name: "Monitor", Kind: CompletionVariableName},
	{Name: "factory", Kind: CompletionFunctionName},
}

var enumParts = []Part{
	{Name: "init", Kind: CompletionKeyword},
	{Name: "sizeof", Kind: CompletionKeyword},
	{Name: "alignof", Kind: CompletionKeyword},
	{Name: "mangleof", Kind: CompletionKeyword},
	{Name: "stringof", Kind: CompletionKeyword},
	{Name: "min", Kind: CompletionKeyword},
	{Name: "max", Kind: CompletionKeyword},
}

// seedParts returns the implicit member set for a completion kind, or nil.
// The returned slice is freshly allocated; callers may append to it.
func seedParts(kind CompletionKind) []Part {
	switch kind {
	case CompletionClass:
		parts := make([]Part, 0, len(aggregateParts)+len(classParts))
		parts = append(parts, aggregateParts...)
		parts = append(parts, classParts...)
		return parts
	case CompletionStruct, CompletionUnion, CompletionInterface, CompletionTemplateName:
		return append([]Part(nil), aggregateParts...)
	case CompletionEnumName:
		return append([]Part(nil), enumParts...)
	default:
		return nil
	}
}

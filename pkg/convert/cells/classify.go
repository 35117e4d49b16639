package cells

var unaryArithTypes = set("$neg", "$pos")

var bitwiseUnaryTypes = set("$not")

var binaryArithTypes = set("$add", "$sub", "$mul", "$div", "$mod", "$pow")

var bitwiseBinaryTypes = set("$and", "$or", "$xor", "$xnor")

var reductionTypes = set(
	"$reduce_and", "$reduce_or", "$reduce_xor", "$reduce_xnor", "$reduce_bool", "$logic_not",
)

var comparisonTypes = set("$eq", "$ne", "$lt", "$le", "$gt", "$ge", "$eqx", "$nex")

var shiftTypes = set("$shl", "$shr", "$sshl", "$sshr", "$shift", "$shiftx")

var logicalAndOrTypes = set("$logic_and", "$logic_or")

var registerTypes = set(
	"$dff", "$dffe", "$adff", "$adffe", "$sdff", "$sdffe", "$sdffce",
	"$dlatch", "$adlatch", "$dffsr", "$dffsre", "$aldff", "$aldffe", "$sr",
)

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}

	return m
}

func isUnary(t string) bool {
	return unaryArithTypes[t] || bitwiseUnaryTypes[t]
}

func isBinaryArith(t string) bool {
	return binaryArithTypes[t]
}

func isBitwiseBinary(t string) bool {
	return bitwiseBinaryTypes[t]
}

func isReduction(t string) bool {
	return reductionTypes[t]
}

func isComparison(t string) bool {
	return comparisonTypes[t]
}

func isShift(t string) bool {
	return shiftTypes[t]
}

func isLogicalAndOr(t string) bool {
	return logicalAndOrTypes[t]
}

func isRegister(t string) bool {
	return registerTypes[t]
}

// IsRegisterType reports whether t is one of the fourteen flip-flop/latch
// cell types, for the module converter's register-initial-value
// post-processing step.
func IsRegisterType(t string) bool {
	return registerTypes[t]
}

package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"langgen/internal/langdef"
	"langgen/internal/object"
)

// builtinFn receives the spelling the program used so messages read in
// the program's own language.
type builtinFn func(e *Evaluator, name string, args []object.Object) (object.Object, error)

var builtins = map[langdef.Builtin]builtinFn{
	langdef.BuiltinPrint:  builtinPrint,
	langdef.BuiltinInput:  builtinInput,
	langdef.BuiltinLength: builtinLength,
	langdef.BuiltinString: builtinString,
	langdef.BuiltinNumber: builtinNumber,
	langdef.BuiltinRandom: builtinRandom,
	langdef.BuiltinAbs:    mathUnary(math.Abs),
	langdef.BuiltinRound:  builtinRound,
	langdef.BuiltinFloor:  mathUnary(math.Floor),
	langdef.BuiltinCeil:   mathUnary(math.Ceil),
	langdef.BuiltinSqrt:   builtinSqrt,
	langdef.BuiltinPower:  builtinPower,
	langdef.BuiltinMin:    extremum(func(a, b float64) bool { return a < b }),
	langdef.BuiltinMax:    extremum(func(a, b float64) bool { return a > b }),
	langdef.BuiltinUpper:  stringMap(strings.ToUpper),
	langdef.BuiltinLower:  stringMap(strings.ToLower),
}

func builtinPrint(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = e.sp.Render(a)
	}
	line := strings.Join(parts, " ") + "\n"
	e.out.WriteString(line)
	if e.stream != nil {
		_, _ = fmt.Fprint(e.stream, line)
	}
	return object.NULL, nil
}

func builtinInput(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	prompt := ""
	if len(args) > 0 {
		prompt = e.sp.Render(args[0])
	}
	line, err := e.console.Input(prompt)
	if err != nil {
		return nil, err
	}
	return object.NewString(line), nil
}

func builtinLength(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	if len(args) == 0 {
		return nil, arityError(name, "1", 0)
	}
	return object.NewNumber(float64(utf8.RuneCountInString(e.sp.Render(args[0])))), nil
}

func builtinString(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	if len(args) == 0 {
		return object.NewString(""), nil
	}
	return object.NewString(e.sp.Render(args[0])), nil
}

func builtinNumber(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	if len(args) == 0 {
		return object.NewNumber(0), nil
	}
	return object.NewNumber(toNumber(args[0])), nil
}

// toNumber converts leniently: anything that does not read as a number is 0.
func toNumber(v object.Object) float64 {
	switch v := v.(type) {
	case *object.Number:
		return v.Value
	case *object.Boolean:
		if v.Value {
			return 1
		}
		return 0
	case *object.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

// Every integer up to maxExactInt in magnitude is exact in a float64.
const maxExactInt = 1 << 53

func builtinRandom(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	switch len(args) {
	case 0:
		return object.NewNumber(e.rnd.Float64()), nil
	case 2:
		nums, err := numbers(name, args)
		if err != nil {
			return nil, err
		}
		if math.Abs(nums[0]) > maxExactInt || math.Abs(nums[1]) > maxExactInt {
			return nil, fmt.Errorf("%s: bounds must lie within -%d..%d", name, int64(maxExactInt), int64(maxExactInt))
		}
		lo, hi := int64(nums[0]), int64(nums[1])
		if lo > hi {
			return nil, fmt.Errorf("%s: empty range %d..%d", name, lo, hi)
		}
		return object.NewNumber(float64(lo + e.rnd.Int63n(hi-lo+1))), nil
	}
	return nil, arityError(name, "0 or 2", len(args))
}

func builtinRound(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, arityError(name, "1 or 2", len(args))
	}
	nums, err := numbers(name, args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 1 {
		return object.NewNumber(math.Round(nums[0])), nil
	}
	scale := math.Pow(10, math.Trunc(nums[1]))
	return finite(name, math.Round(nums[0]*scale)/scale)
}

func builtinSqrt(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, arityError(name, "1", len(args))
	}
	nums, err := numbers(name, args)
	if err != nil {
		return nil, err
	}
	if nums[0] < 0 {
		return nil, fmt.Errorf("%s: negative argument", name)
	}
	return object.NewNumber(math.Sqrt(nums[0])), nil
}

func builtinPower(e *Evaluator, name string, args []object.Object) (object.Object, error) {
	if len(args) != 2 {
		return nil, arityError(name, "2", len(args))
	}
	nums, err := numbers(name, args)
	if err != nil {
		return nil, err
	}
	return finite(name, math.Pow(nums[0], nums[1]))
}

// finite rejects results that are not ordinary numbers.
func finite(name string, v float64) (object.Object, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s: result is not a finite number", name)
	}
	return object.NewNumber(v), nil
}

func mathUnary(f func(float64) float64) builtinFn {
	return func(e *Evaluator, name string, args []object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, arityError(name, "1", len(args))
		}
		nums, err := numbers(name, args)
		if err != nil {
			return nil, err
		}
		return object.NewNumber(f(nums[0])), nil
	}
}

func extremum(better func(a, b float64) bool) builtinFn {
	return func(e *Evaluator, name string, args []object.Object) (object.Object, error) {
		if len(args) == 0 {
			return nil, arityError(name, "at least 1", 0)
		}
		nums, err := numbers(name, args)
		if err != nil {
			return nil, err
		}
		best := nums[0]
		for _, n := range nums[1:] {
			if better(n, best) {
				best = n
			}
		}
		return object.NewNumber(best), nil
	}
}

func stringMap(f func(string) string) builtinFn {
	return func(e *Evaluator, name string, args []object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, arityError(name, "1", len(args))
		}
		return object.NewString(f(e.sp.Render(args[0]))), nil
	}
}

func numbers(name string, args []object.Object) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		n, ok := a.(*object.Number)
		if !ok {
			return nil, fmt.Errorf("%s expects numbers, got %s", name, a.Type())
		}
		out[i] = n.Value
	}
	return out, nil
}

func arityError(name, want string, got int) error {
	return fmt.Errorf("%s expects %s argument(s), got %d", name, want, got)
}

package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/weisyn/evmabi/pkg/types"
)

// Argument 函数的一个入参或返回值
type Argument struct {
	Name    string
	Type    Type
	Indexed bool
}

// Function 一个可调用的函数条目
//
// Signature 与 Selector 在加载时由输入类型计算，不读取外部给出的值。
type Function struct {
	Name            string
	Inputs          []Argument
	Outputs         []Argument
	StateMutability string
	Signature       string
	Selector        [4]byte
}

func newFunction(entry types.ABIEntry) (*Function, error) {
	if entry.Name == "" {
		return nil, invalidABI("function entry without name")
	}
	inputs, err := newArguments(entry.Inputs)
	if err != nil {
		return nil, withPath(err, entry.Name)
	}
	outputs, err := newArguments(entry.Outputs)
	if err != nil {
		return nil, withPath(err, entry.Name)
	}
	fn := &Function{
		Name:            entry.Name,
		Inputs:          inputs,
		Outputs:         outputs,
		StateMutability: entry.Mutability(),
	}
	fn.Signature = Signature(fn.Name, fn.InputTypes())
	fn.Selector = Selector(fn.Signature)
	return fn, nil
}

func newArguments(params []types.ABIParam) ([]Argument, error) {
	args := make([]Argument, len(params))
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
		t, err := NewType(p.Type, p.InternalType, p.Components)
		if err != nil {
			return nil, withPath(err, elemLabel(names, i))
		}
		args[i] = Argument{Name: p.Name, Type: t, Indexed: p.Indexed}
	}
	return args, nil
}

// InputTypes 返回入参类型列表
func (f *Function) InputTypes() []Type { return argumentTypes(f.Inputs) }

// OutputTypes 返回返回值类型列表
func (f *Function) OutputTypes() []Type { return argumentTypes(f.Outputs) }

func argumentTypes(args []Argument) []Type {
	ts := make([]Type, len(args))
	for i, a := range args {
		ts[i] = a.Type
	}
	return ts
}

func argumentNames(args []Argument) []string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Name
	}
	return names
}

// SelectorHex 返回 0x 前缀的选择器
func (f *Function) SelectorHex() string { return SelectorHex(f.Selector) }

// IsConstant 报告函数是否为 view/pure
func (f *Function) IsConstant() bool {
	return f.StateMutability == types.MutabilityView || f.StateMutability == types.MutabilityPure
}

// Pack 编码调用数据：selector ++ 参数编码
func (f *Function) Pack(args []Value) ([]byte, error) {
	if len(args) != len(f.Inputs) {
		return nil, withPath(arityError(f.Signature, len(f.Inputs), len(args)), f.Name)
	}
	enc, err := encodeTuple(f.InputTypes(), argumentNames(f.Inputs), args)
	if err != nil {
		return nil, withPath(err, f.Name)
	}
	out := make([]byte, 0, len(f.Selector)+len(enc))
	out = append(out, f.Selector[:]...)
	return append(out, enc...), nil
}

// Unpack 严格解码返回数据
func (f *Function) Unpack(raw []byte) ([]Value, error) {
	return f.UnpackWith(raw, DecodeOptions{})
}

// UnpackWith 按选项解码返回数据
func (f *Function) UnpackWith(raw []byte, opts DecodeOptions) ([]Value, error) {
	if len(raw) == 0 && len(f.Outputs) > 0 {
		return nil, withPath(truncatedError("empty result for %d outputs", len(f.Outputs)), f.Name)
	}
	d := decoder{lenient: opts.Lenient}
	values, err := d.decodeTuple(f.OutputTypes(), argumentNames(f.Outputs), raw)
	if err != nil {
		return nil, withPath(err, f.Name)
	}
	return values, nil
}

// UnpackInput 校验调用数据的选择器并解码入参
func (f *Function) UnpackInput(calldata []byte) ([]Value, error) {
	return f.UnpackInputWith(calldata, DecodeOptions{})
}

// UnpackInputWith 按选项解码调用数据
func (f *Function) UnpackInputWith(calldata []byte, opts DecodeOptions) ([]Value, error) {
	if len(calldata) < len(f.Selector) {
		return nil, truncatedError("calldata has %d bytes, selector needs 4", len(calldata))
	}
	if !bytes.Equal(calldata[:4], f.Selector[:]) {
		return nil, formatError("", "selector %x does not match %s (%s)", calldata[:4], f.Signature, f.SelectorHex())
	}
	d := decoder{lenient: opts.Lenient}
	values, err := d.decodeTuple(f.InputTypes(), argumentNames(f.Inputs), calldata[4:])
	if err != nil {
		return nil, withPath(err, f.Name)
	}
	return values, nil
}

// String 返回可读形式，如 function transfer(address to, uint256 amount) nonpayable returns (bool)
func (f *Function) String() string {
	s := fmt.Sprintf("function %s(%s) %s", f.Name, formatArguments(f.Inputs), f.StateMutability)
	if len(f.Outputs) > 0 {
		s += " returns (" + formatArguments(f.Outputs) + ")"
	}
	return s
}

func formatArguments(args []Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Type.String()
		if a.Name != "" {
			parts[i] += " " + a.Name
		}
	}
	return strings.Join(parts, ", ")
}

// ============================================================================
//                               ABI
// ============================================================================

// ABI 一份合约接口，加载后只读，可在多个 goroutine 间共享
type ABI struct {
	functions   []*Function
	byName      map[string][]*Function
	bySignature map[string]*Function
	bySelector  map[[4]byte]*Function
}

// JSON 从 reader 读取 ABI JSON 或编译产物
func JSON(r io.Reader) (*ABI, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(KindInvalidABI).detail("read ABI").cause(err).build()
	}
	return ParseABI(data)
}

// ParseABI 解析 JSON ABI 数组；对象形式按编译产物处理，读取其 abi 字段
func ParseABI(data []byte) (*ABI, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, invalidABI("empty ABI document")
	}
	if trimmed[0] == '{' {
		return ParseArtifact(trimmed)
	}
	var entries []types.ABIEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, newError(KindInvalidABI).detail("decode ABI JSON").cause(err).build()
	}
	return NewABI(entries)
}

// ParseArtifact 解析 Hardhat/Foundry 编译产物
func ParseArtifact(data []byte) (*ABI, error) {
	var artifact types.ContractArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, newError(KindInvalidABI).detail("decode artifact JSON").cause(err).build()
	}
	if artifact.ABI == nil {
		return nil, invalidABI("artifact %q has no abi field", artifact.ContractName)
	}
	return NewABI(artifact.ABI)
}

// NewABI 由条目构建 ABI，非函数条目（event/constructor/error/fallback/receive）被跳过
func NewABI(entries []types.ABIEntry) (*ABI, error) {
	a := &ABI{
		byName:      make(map[string][]*Function),
		bySignature: make(map[string]*Function),
		bySelector:  make(map[[4]byte]*Function),
	}
	for _, entry := range entries {
		if entry.Type != "" && entry.Type != types.ABIEntryFunction {
			continue
		}
		fn, err := newFunction(entry)
		if err != nil {
			return nil, err
		}
		if _, dup := a.bySignature[fn.Signature]; dup {
			return nil, invalidABI("duplicate function %s", fn.Signature)
		}
		if other, clash := a.bySelector[fn.Selector]; clash {
			return nil, invalidABI("selector %s of %s collides with %s", fn.SelectorHex(), fn.Signature, other.Signature)
		}
		a.functions = append(a.functions, fn)
		a.byName[fn.Name] = append(a.byName[fn.Name], fn)
		a.bySignature[fn.Signature] = fn
		a.bySelector[fn.Selector] = fn
	}
	return a, nil
}

// Functions 按声明顺序返回全部函数
func (a *ABI) Functions() []*Function {
	return append([]*Function(nil), a.functions...)
}

// Names 返回排序后的函数名
func (a *ABI) Names() []string {
	names := make([]string, 0, len(a.byName))
	for name := range a.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overloads 返回同名的全部重载
func (a *ABI) Overloads(name string) []*Function {
	return append([]*Function(nil), a.byName[name]...)
}

// FunctionBySignature 按签名查找，签名会先规范化
func (a *ABI) FunctionBySignature(sig string) (*Function, error) {
	norm, err := NormalizeSignature(sig)
	if err != nil {
		return nil, err
	}
	fn, ok := a.bySignature[norm]
	if !ok {
		return nil, newError(KindFunctionNotFound).detail("no function %s", norm).build()
	}
	return fn, nil
}

// FunctionBySelector 按 4 字节选择器查找
func (a *ABI) FunctionBySelector(sel [4]byte) (*Function, error) {
	fn, ok := a.bySelector[sel]
	if !ok {
		return nil, newError(KindFunctionNotFound).detail("no function with selector %s", SelectorHex(sel)).build()
	}
	return fn, nil
}

// Lookup 解析调用目标
//
// name 含 "(" 时按完整签名精确匹配；否则在同名重载中按参数个数筛选：
// 恰好一个即选中，没有则 ErrArity，多于一个则 ErrAmbiguousOverload。
// argc < 0 表示不按参数个数筛选。
func (a *ABI) Lookup(name string, argc int) (*Function, error) {
	if strings.Contains(name, "(") {
		fn, err := a.FunctionBySignature(name)
		if err != nil {
			return nil, err
		}
		if argc >= 0 && len(fn.Inputs) != argc {
			return nil, withPath(arityError(fn.Signature, len(fn.Inputs), argc), fn.Name)
		}
		return fn, nil
	}

	candidates := a.byName[name]
	if len(candidates) == 0 {
		return nil, newError(KindFunctionNotFound).detail("no function named %q", name).build()
	}
	if argc < 0 {
		if len(candidates) == 1 {
			return candidates[0], nil
		}
		return nil, ambiguousError(name, candidates)
	}

	var matched []*Function
	for _, fn := range candidates {
		if len(fn.Inputs) == argc {
			matched = append(matched, fn)
		}
	}
	switch len(matched) {
	case 0:
		if len(candidates) == 1 {
			return nil, withPath(arityError(candidates[0].Signature, len(candidates[0].Inputs), argc), name)
		}
		arities := make([]string, len(candidates))
		for i, fn := range candidates {
			arities[i] = fmt.Sprint(len(fn.Inputs))
		}
		return nil, newError(KindArity).typ(name).
			detail("no overload takes %d arguments, have %s", argc, strings.Join(arities, "/")).build()
	case 1:
		return matched[0], nil
	}
	return nil, ambiguousError(name, matched)
}

func ambiguousError(name string, fns []*Function) error {
	sigs := make([]string, len(fns))
	for i, fn := range fns {
		sigs[i] = fn.Signature
	}
	return newError(KindAmbiguousOverload).typ(name).
		detail("candidates %s, call by full signature", strings.Join(sigs, ", ")).build()
}

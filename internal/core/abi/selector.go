package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signature 生成规范函数签名 name(t1,t2,...)
func Signature(name string, types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

// Selector 返回签名 Keccak-256 摘要的前 4 字节
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// SelectorHex 返回 0x 前缀的 8 位十六进制选择器
func SelectorHex(sel [4]byte) string {
	return hexutil.Encode(sel[:])
}

// NormalizeSignature 将人工书写的签名规范化
//
// 去除空白、展开 uint/int 别名，tuple 写作 (t1,t2)，例如
// "transfer(address to, uint amount)" -> "transfer(address,uint256)"。参数名会被忽略。
func NormalizeSignature(sig string) (string, error) {
	name, types, err := ParseSignature(sig)
	if err != nil {
		return "", err
	}
	return Signature(name, types), nil
}

// ParseSignature 解析 name(t1,t2,...) 形式的签名
func ParseSignature(sig string) (string, []Type, error) {
	sig = strings.TrimSpace(sig)
	open := strings.Index(sig, "(")
	if open <= 0 || !strings.HasSuffix(sig, ")") {
		return "", nil, formatError("", "malformed signature %q", sig)
	}
	name := strings.TrimSpace(sig[:open])
	if strings.ContainsAny(name, " \t,()") {
		return "", nil, formatError("", "malformed function name in %q", sig)
	}
	types, err := parseTypeList(sig[open+1 : len(sig)-1])
	if err != nil {
		return "", nil, err
	}
	return name, types, nil
}

// parseTypeList 解析逗号分隔的类型列表，逗号只在最外层括号内分割
func parseTypeList(s string) ([]Type, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var (
		out   []Type
		depth int
		start int
	)
	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			switch s[i] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				if depth < 0 {
					return nil, formatError("", "unbalanced parentheses in %q", s)
				}
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		if depth != 0 {
			return nil, formatError("", "unbalanced parentheses in %q", s)
		}
		t, err := parseTypeExpr(s[start:i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		start = i + 1
	}
	return out, nil
}

// parseTypeExpr 解析单个类型表达式，允许带参数名（"address to"）和 tuple 写法 "(a,b)[]"
func parseTypeExpr(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Type{}, formatError("", "empty type in signature")
	}
	if s[0] != '(' {
		if sp := strings.IndexAny(s, " \t"); sp > 0 {
			s = s[:sp]
		}
		return NewType(s, "", nil)
	}

	depth := 0
	end := -1
	for i := 0; i < len(s) && end < 0; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
			}
		}
	}
	if end < 0 {
		return Type{}, formatError("", "unbalanced parentheses in %q", s)
	}
	members, err := parseTypeList(s[1:end])
	if err != nil {
		return Type{}, err
	}
	if len(members) == 0 {
		return Type{}, invalidABI("tuple type without components")
	}
	typ := Type{Kind: TupleTy, Components: members, ComponentNames: make([]string, len(members))}

	suffix := strings.TrimSpace(s[end+1:])
	if sp := strings.IndexAny(suffix, " \t"); sp >= 0 {
		suffix = suffix[:sp]
	}
	for suffix != "" {
		if suffix[0] != '[' {
			return Type{}, formatError("", "malformed array suffix in %q", s)
		}
		closeIdx := strings.Index(suffix, "]")
		if closeIdx < 0 {
			return Type{}, formatError("", "malformed array suffix in %q", s)
		}
		// 借用 NewType 解析维度，元素类型用占位 bool 再替换
		dim, err := NewType("bool"+suffix[:closeIdx+1], "", nil)
		if err != nil {
			return Type{}, err
		}
		elem := typ
		dim.Elem = &elem
		typ = dim
		suffix = suffix[closeIdx+1:]
	}
	return typ, nil
}

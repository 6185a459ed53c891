// Package types provides ABI wire definitions shared by the codec, the registry and the CLI.
package types

// ABI 条目类型
const (
	ABIEntryFunction    = "function"
	ABIEntryEvent       = "event"
	ABIEntryConstructor = "constructor"
	ABIEntryError       = "error"
	ABIEntryFallback    = "fallback"
	ABIEntryReceive     = "receive"
)

// 状态可变性
const (
	MutabilityPure       = "pure"
	MutabilityView       = "view"
	MutabilityNonPayable = "nonpayable"
	MutabilityPayable    = "payable"
)

// ABIParam ABI参数描述
//
// 与 solc / Hardhat 输出的 JSON ABI 完全兼容，tuple 类型通过 Components 描述成员
type ABIParam struct {
	Name         string     `json:"name"`                   // 参数名（可为空）
	Type         string     `json:"type"`                   // 规范类型字符串（uint256/address/tuple[]/...）
	InternalType string     `json:"internalType,omitempty"` // 编译器内部类型（如 struct RaffleManager.Raffle）
	Components   []ABIParam `json:"components,omitempty"`   // tuple 成员
	Indexed      bool       `json:"indexed,omitempty"`      // 事件参数是否索引
}

// ABIEntry JSON ABI 中的一个条目
type ABIEntry struct {
	Type            string     `json:"type,omitempty"`            // function/event/constructor/...，缺省视为 function
	Name            string     `json:"name,omitempty"`            // 名称
	Inputs          []ABIParam `json:"inputs"`                    // 入参
	Outputs         []ABIParam `json:"outputs,omitempty"`         // 返回值
	StateMutability string     `json:"stateMutability,omitempty"` // pure/view/nonpayable/payable
	Anonymous       bool       `json:"anonymous,omitempty"`       // 事件是否匿名

	// 旧版编译器字段（solc < 0.4.16）
	Constant bool `json:"constant,omitempty"`
	Payable  bool `json:"payable,omitempty"`
}

// Mutability 返回条目的状态可变性，兼容旧版 constant/payable 字段
func (e ABIEntry) Mutability() string {
	if e.StateMutability != "" {
		return e.StateMutability
	}
	switch {
	case e.Constant:
		return MutabilityView
	case e.Payable:
		return MutabilityPayable
	default:
		return MutabilityNonPayable
	}
}

// ContractArtifact 编译产物（Hardhat/Foundry artifact）中与 ABI 相关的字段
type ContractArtifact struct {
	ContractName string     `json:"contractName,omitempty"`
	SourceName   string     `json:"sourceName,omitempty"`
	ABI          []ABIEntry `json:"abi"`
}

// FunctionInfo 函数摘要，用于列表展示
type FunctionInfo struct {
	Name            string `json:"name"`
	Signature       string `json:"signature"`
	Selector        string `json:"selector"`
	StateMutability string `json:"stateMutability"`
	Outputs         string `json:"outputs,omitempty"`
}

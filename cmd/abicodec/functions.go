package main

import (
	"github.com/spf13/cobra"

	"github.com/weisyn/evmabi/pkg/types"
)

// functionTable functions 的输出
type functionTable []types.FunctionInfo

func (t functionTable) header() []string {
	return []string{"函数", "选择器", "可变性", "输出"}
}

func (t functionTable) rows() [][]string {
	rows := make([][]string, len(t))
	for i, fn := range t {
		rows[i] = []string{fn.Signature, fn.Selector, fn.StateMutability, fn.Outputs}
	}
	return rows
}

// functionsCmd 列出合约函数
var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "列出合约 ABI 中的函数及其选择器",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := currentContract()
		if err != nil {
			return err
		}
		infos, err := application.Service.Functions(contractID)
		if err != nil {
			return err
		}
		return formatter.Print(functionTable(infos))
	},
}

// contractsCmd 列出已加载的合约
var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "列出已加载的合约标识",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatter.Print(application.Service.Contracts())
	},
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/evmabi/internal/app"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile   string // 配置文件路径
	ABIFile      string // 单个 ABI 文件
	ABIDir       string // ABI 目录
	Contract     string // 合约标识
	OutputFormat string // 输出格式
	LogLevel     string // 日志级别
}

var (
	globalFlags GlobalFlags
	application *app.App
	formatter   *Formatter
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "abicodec",
	Short: "以太坊合约调用 ABI 编解码工具",
	Long: `abicodec - 以太坊合约调用数据编解码

根据合约 ABI 生成调用数据（选择器 + 参数编码），并解码返回数据。
不需要连接节点，所有计算均在本地完成。

示例:
  abicodec --abi ERC20.json encode transfer 0x1111111111111111111111111111111111111111 1000
  abicodec --abi ERC20.json decode balanceOf 0x00000000000000000000000000000000000000000000000000000000000003e8
  abicodec selector "transfer(address,uint256)"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := ParseFormat(globalFlags.OutputFormat)
		if err != nil {
			return err
		}
		formatter = NewFormatter(format, cmd.OutOrStdout())

		application, err = app.Bootstrap(
			app.WithConfigFile(globalFlags.ConfigFile),
			app.WithLogLevel(globalFlags.LogLevel),
			app.WithABIDir(globalFlags.ABIDir),
		)
		if err != nil {
			return fmt.Errorf("初始化: %w", err)
		}

		if globalFlags.ABIFile != "" {
			id := globalFlags.Contract
			if id == "" {
				id = contractIDFromPath(globalFlags.ABIFile)
				globalFlags.Contract = id
			}
			if err := application.Service.LoadFile(id, globalFlags.ABIFile); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Close()
		}
	},
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// 全局标志
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "配置文件路径 (JSON)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.ABIFile, "abi", "", "合约 ABI 文件 (ABI 数组或编译产物)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.ABIDir, "abi-dir", "", "预加载的 ABI 目录 (覆盖 EVMABI_ABI_DIR)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Contract, "contract", "", "合约标识 (默认取 ABI 文件名)")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.OutputFormat, "output", "o", "auto", "输出格式: auto|json|text|table")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error")

	// 添加子命令
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(decodeCallCmd)
	rootCmd.AddCommand(selectorCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(contractsCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(versionCmd)
}

// contractIDFromPath 取文件名（不含扩展名）作为合约标识
func contractIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// currentContract 返回要操作的合约标识
//
// 未指定 --contract 且只注册了一个合约时使用该合约。
func currentContract() (string, error) {
	if globalFlags.Contract != "" {
		return globalFlags.Contract, nil
	}
	ids := application.Service.Contracts()
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("未加载任何 ABI，请使用 --abi 或 --abi-dir")
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("已加载多个合约 (%s)，请使用 --contract 指定", strings.Join(ids, ", "))
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Format 输出格式
type Format string

const (
	// FormatAuto 终端输出表格，否则输出 JSON
	FormatAuto Format = "auto"
	// FormatJSON JSON格式
	FormatJSON Format = "json"
	// FormatText 纯文本格式
	FormatText Format = "text"
	// FormatTable 表格格式
	FormatTable Format = "table"
)

// ParseFormat 解析 --output 取值
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatText, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("不支持的输出格式: %s (可选 auto|json|text|table)", s)
	}
}

// tabular 可以按表格输出的数据
type tabular interface {
	header() []string
	rows() [][]string
}

// Formatter 输出格式化器
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter 创建格式化器，auto 格式按输出目标是否为终端决定
func NewFormatter(format Format, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}
	if format == FormatAuto {
		format = FormatJSON
		if f, ok := writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = FormatTable
		}
	}
	return &Formatter{format: format, writer: writer}
}

// Print 打印输出
func (f *Formatter) Print(data interface{}) error {
	switch f.format {
	case FormatTable:
		if t, ok := data.(tabular); ok {
			return f.printTable(t)
		}
		return f.printText(data)
	case FormatText:
		return f.printText(data)
	default:
		return f.printJSON(data)
	}
}

// printJSON 打印JSON格式
func (f *Formatter) printJSON(data interface{}) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, string(output)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printTable 使用 pterm 渲染表格
func (f *Formatter) printTable(t tabular) error {
	data := pterm.TableData{t.header()}
	data = append(data, t.rows()...)
	out, err := pterm.DefaultTable.WithHasHeader().WithHeaderRowSeparator("-").WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if _, err := fmt.Fprintln(f.writer, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printText 打印纯文本格式
func (f *Formatter) printText(data interface{}) error {
	var err error
	switch v := data.(type) {
	case string:
		_, err = fmt.Fprintln(f.writer, v)
	case fmt.Stringer:
		_, err = fmt.Fprintln(f.writer, v.String())
	case json.RawMessage:
		_, err = fmt.Fprintln(f.writer, string(v))
	case tabular:
		for _, row := range v.rows() {
			if _, err = fmt.Fprintln(f.writer, strings.Join(row, "\t")); err != nil {
				break
			}
		}
	default:
		out, mErr := json.Marshal(v)
		if mErr != nil {
			return fmt.Errorf("marshal json: %w", mErr)
		}
		_, err = fmt.Fprintln(f.writer, string(out))
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

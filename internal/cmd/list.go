package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/s2ws/s2gen/internal/codegen/asyncapi"
	"github.com/s2ws/s2gen/internal/codegen/controltype"
	"github.com/s2ws/s2gen/internal/codegen/meta"
)

type List struct {
	Spec string    `help:"AsyncAPI document (YAML or JSON)" short:"s" required:"" type:"existingfile" env:"S2GEN_SPEC"`
	Out  io.Writer `kong:"-"`
}

// Run is called by Kong when the list command is executed.
func (c *List) Run(logger *slog.Logger) error {
	doc, err := asyncapi.Load(c.Spec)
	if err != nil {
		return err
	}
	md := meta.New(doc)
	logger.Debug("Listing message groups", "spec", c.Spec, "messages", len(doc.Messages))

	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"Group", "Node", "Count", "Messages"})
	for _, key := range md.Groups.Keys() {
		msgs := md.Groups.ByKey(key)
		node := "-"
		if ct, err := controltype.Parse(key); err == nil {
			node = ct.NodeType()
		}
		names := make([]string, len(msgs))
		for i, m := range msgs {
			names[i] = m.Name
		}
		tw.AppendRow(table.Row{key, node, len(msgs), strings.Join(names, "\n")})
	}
	tw.AppendFooter(table.Row{"", "", len(doc.Messages), ""})
	tw.Render()
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/shellcore/capability"
	"github.com/lixenwraith/shellcore/status"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the terminal setup and derived values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.start()
			if err != nil {
				return err
			}
			d := sess.dispatcher()

			info := map[string]string{
				"entry":       sess.store.TermName(),
				"initialized": fmt.Sprint(sess.store.IsInitialized()),
				"color":       d.ColorSupport().String(),
			}
			for k, v := range d.Registry().Snapshot() {
				info[k] = v
			}
			for c, v := range sess.store.Overrides() {
				info["cap."+c.String()] = fmt.Sprintf("%q", v)
			}
			return writeMap(cmd.OutOrStdout(), info, a.flags.jsonMode)
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get CODE...",
		Short: "Look up capabilities by two-character termcap code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]capability.Info, 0, len(args))
			for _, code := range args {
				info, ok := capability.Lookup(code)
				if !ok {
					return usageError{fmt.Errorf("unknown capability %q", code)}
				}
				infos = append(infos, info)
			}

			sess, err := a.start()
			if err != nil {
				return err
			}

			out := make(map[string]string, len(infos))
			for _, info := range infos {
				out[info.ID.Code.String()] = lookup(sess, info)
			}
			return writeMap(cmd.OutOrStdout(), out, a.flags.jsonMode)
		},
	}
}

// lookup renders one capability value, "absent" when undefined
func lookup(sess *session, info capability.Info) string {
	switch info.ID.Kind {
	case capability.KindString:
		if v, ok := sess.store.String(capability.StringCap(info.ID.Code)); ok {
			return fmt.Sprintf("%q", v)
		}
	case capability.KindNumber:
		if v, ok := sess.store.Number(capability.NumberCap(info.ID.Code)); ok {
			return fmt.Sprint(v)
		}
	case capability.KindFlag:
		return fmt.Sprint(sess.store.Flag(capability.FlagCap(info.ID.Code)))
	}
	return "absent"
}

func newDispatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch NAME=VALUE...",
		Short: "Assign shell variables and show what the dispatcher derives",
		Long: "Each assignment is applied in order and reported to the dispatcher.\n" +
			"NAME= sets an empty value, NAME alone unsets the variable.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.start()
			if err != nil {
				return err
			}
			d := sess.dispatcher()

			for _, arg := range args {
				name, value, assign := strings.Cut(arg, "=")
				if name == "" {
					return usageError{fmt.Errorf("bad assignment %q", arg)}
				}
				switch {
				case !assign:
					sess.vars.Unset(name)
				case exportByDefault(name):
					sess.vars.Export(name, value)
				default:
					sess.vars.Set(name, value)
				}
				d.VarChange(name, sess.vars)
			}
			return writeMap(cmd.OutOrStdout(), d.Registry().Snapshot(), a.flags.jsonMode)
		},
	}
}

// exportByDefault treats upper-case names as environment variables, the rest as shell locals
func exportByDefault(name string) bool {
	return strings.ToUpper(name) == name
}

func newMetricsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print derived values as Prometheus gauges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.start()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			if err := reg.Register(status.NewCollector(sess.dispatcher().Registry(), "shellcore")); err != nil {
				return err
			}
			families, err := reg.Gather()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					var labels []string
					for _, lp := range m.GetLabel() {
						labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
					}
					name := mf.GetName()
					if len(labels) > 0 {
						name += "{" + strings.Join(labels, ",") + "}"
					}
					fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
				}
			}
			return nil
		},
	}
}

func writeMap(w io.Writer, m map[string]string, jsonMode bool) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, m[k])
	}
	return tw.Flush()
}

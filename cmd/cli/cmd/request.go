package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newRequestCmd(a *app) *cobra.Command {
	var (
		data    string
		noKey   bool
		headers []string
		path    string
	)

	cmd := &cobra.Command{
		Use:   "request METHOD ENDPOINT",
		Short: "Send a raw request to the API and print the JSON answer",
		Long: `Sends METHOD to the configured server + ENDPOINT as is (no normalization),
with the API key and the session token. Non-2xx answers fail with their status.

--path extracts part of the answer using GJSON syntax
(https://github.com/tidwall/gjson/blob/master/SYNTAX.md).`,
		Example: `  osclient request GET /infos/formats --path data.output_formats
  osclient request GET "/subtitles?query=matrix" --path "data.#.attributes.release"
  osclient request POST /download --data '{"file_id": 123}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			endpoint := args[1]

			var body any
			if data != "" {
				if err := json.Unmarshal([]byte(data), &body); err != nil {
					return fmt.Errorf("invalid --data: %w", err)
				}
			}

			rt, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			h := rt.headers()
			for _, kv := range headers {
				name, value, ok := strings.Cut(kv, ":")
				if !ok {
					return fmt.Errorf("invalid --header %q, want \"Name: value\"", kv)
				}
				h[strings.TrimSpace(name)] = strings.TrimSpace(value)
			}

			res := rt.client.Executor().Execute(cmd.Context(), method, endpoint, !noKey, h, body)
			if !res.OK() {
				return fmt.Errorf("%s %s failed: %w", method, endpoint, explain(res.Err()))
			}

			raw, err := json.MarshalIndent(res.Value(), "", "  ")
			if err != nil {
				return err
			}
			if path != "" {
				v := gjson.GetBytes(raw, path)
				if !v.Exists() {
					return fmt.Errorf("path %q not found in response", path)
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body (dropped for GET)")
	cmd.Flags().BoolVar(&noKey, "no-key", false, "Do not send the Api-Key header")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header, \"Name: value\" (repeatable)")
	cmd.Flags().StringVar(&path, "path", "", "GJSON path to extract from the response")
	return cmd
}

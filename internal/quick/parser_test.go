package quick

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Command
	}{
		{"/task Read @books", Command{Action: ActionCreateTask, Name: "Read", Category: "books", Raw: "/task Read @books"}},
		{"/task   Deep work  ", Command{Action: ActionCreateTask, Name: "Deep work", Raw: "/task   Deep work"}},
		{"/task", Command{Action: ActionUnknown, Raw: "/task"}},
		{"/start report", Command{Action: ActionStartTask, Query: "report", Raw: "/start report"}},
		{"/start", Command{Action: ActionUnknown, Raw: "/start"}},
		{"/stop", Command{Action: ActionStopAll, Raw: "/stop"}},
		{"/STOP", Command{Action: ActionStopAll, Raw: "/STOP"}},
		{"/help", Command{Action: ActionHelp, Raw: "/help"}},
		{"/dance", Command{Action: ActionUnknown, Raw: "/dance"}},
		{"buy milk", Command{Action: ActionCreateTask, Name: "buy milk", Category: "quick", Raw: "buy milk"}},
		{"call mom @family", Command{Action: ActionCreateTask, Name: "call mom", Category: "family", Raw: "call mom @family"}},
		{"@lonely", Command{Action: ActionMessage, Raw: "@lonely"}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			if got := Parse(tc.input); got != tc.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

// Command portal is a terminal client for the student portal API: signup,
// login, and a dashboard listing enrolled, available and finished courses.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"studentportal/internal/portal"
)

type page string

const (
	pageLogin     page = "login"
	pageDashboard page = "dashboard"
)

// terminalView buffers the rendered dashboard and prints it on demand.
type terminalView struct {
	studentName string
	buckets     map[portal.Bucket][]portal.Row
}

func newTerminalView() *terminalView {
	return &terminalView{buckets: make(map[portal.Bucket][]portal.Row)}
}

func (v *terminalView) SetStudentName(name string) {
	v.studentName = name
}

func (v *terminalView) RenderBucket(bucket portal.Bucket, rows []portal.Row) {
	v.buckets[bucket] = rows
}

func (v *terminalView) print() {
	fmt.Printf("\nWelcome, %s!\n", v.studentName)
	titles := map[portal.Bucket]string{
		portal.BucketEnrolled:  "Enrolled Courses",
		portal.BucketAvailable: "Available Courses",
		portal.BucketFinished:  "Finished Courses",
	}
	for _, bucket := range portal.Buckets {
		fmt.Printf("\n== %s ==\n", titles[bucket])
		for _, row := range v.buckets[bucket] {
			if row.Placeholder != "" {
				fmt.Printf("  %s\n", row.Placeholder)
				continue
			}
			fmt.Printf("  [%d] %s - %s", row.CourseID, row.Name, row.Description)
			if row.Badge != "" {
				fmt.Printf(" (%s)", row.Badge)
			}
			for _, action := range row.Actions {
				fmt.Printf(" <%s>", action.Kind)
			}
			fmt.Println()
		}
	}
	fmt.Println()
}

// app implements portal.Navigator by switching the active page.
type app struct {
	page    page
	view    *terminalView
	session *portal.DashboardSession
}

func (a *app) ToLogin() {
	a.page = pageLogin
	fmt.Println("-- login page --")
}

func (a *app) ToDashboard() {
	a.page = pageDashboard
	a.session.LoadDashboard(context.Background())
	a.view.print()
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "portal API base URL")
	flag.Parse()

	client, err := portal.NewClient(*baseURL)
	if err != nil {
		log.Fatalf("error creating API client: %v\n", err)
	}

	status := portal.NewStatusChannel()
	status.SetNotify(func(msg portal.StatusMessage) {
		if msg.Kind != portal.StatusNone {
			fmt.Printf("[%s] %s\n", msg.Kind, msg.Text)
		}
	})

	view := newTerminalView()
	a := &app{page: pageLogin, view: view}
	a.session = portal.NewDashboardSession(client, view, status, a)
	forms := portal.NewAuthForms(client, status, a)
	forms.RedirectDelay = 0

	fmt.Println("Student portal. Commands: signup <name> <email> <password> <confirm>,")
	fmt.Println("login <email> <password>, enroll <id>, drop <id>, finish <id>,")
	fmt.Println("refresh, logout, quit")

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "quit":
			return
		case "signup":
			if len(fields) != 5 {
				fmt.Println("usage: signup <name> <email> <password> <confirm>")
				break
			}
			forms.SubmitSignup(ctx, portal.SignupForm{
				Name: fields[1], Email: fields[2], Password: fields[3], ConfirmPassword: fields[4],
			})
		case "login":
			if len(fields) != 3 {
				fmt.Println("usage: login <email> <password>")
				break
			}
			forms.SubmitLogin(ctx, portal.LoginForm{Email: fields[1], Password: fields[2]})
		case "enroll", "drop", "finish":
			if a.page != pageDashboard {
				fmt.Println("log in first")
				break
			}
			if len(fields) != 2 {
				fmt.Printf("usage: %s <course id>\n", fields[0])
				break
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("course id must be a number")
				break
			}
			kinds := map[string]portal.ActionKind{
				"enroll": portal.ActionEnroll,
				"drop":   portal.ActionDisenroll,
				"finish": portal.ActionFinish,
			}
			a.session.Dispatch(ctx, portal.Action{Kind: kinds[fields[0]], CourseID: id})
			if a.page == pageDashboard {
				view.print()
			}
		case "refresh":
			if a.page == pageDashboard {
				a.session.LoadDashboard(ctx)
				view.print()
			}
		case "logout":
			if err := client.Logout(ctx); err != nil {
				fmt.Printf("logout failed: %v\n", err)
			}
			a.ToLogin()
		default:
			fmt.Println("unknown command")
		}
		fmt.Print("> ")
	}
}

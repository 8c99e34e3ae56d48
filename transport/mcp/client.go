package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Snakes and Ladders",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Snakes and Ladders - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Be the first token to land exactly on square 100.

AVAILABLE TOOLS:
- start_game: Start a session for 2-6 players on a tier (Easy, Medium, Hard)
- roll_dice: Roll for the player whose turn it is
- game_snapshot: Current positions, whose turn it is and the game state
- turn_history: Past turns with die values, steps and jumps
- list_sessions: List all active sessions
- list_tiers: List available difficulty tiers
- game_instructions: Full rules

Every player is driven through the same session: call roll_dice once per turn.`),
	)

	// Register all tools
	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Start a new game session. A board is picked at random from the tier's pool.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"player_count": map[string]interface{}{
					"type":        "integer",
					"minimum":     engine.MinPlayers,
					"maximum":     engine.MaxPlayers,
					"description": "Number of players (2-6)",
				},
				"tier": map[string]interface{}{
					"type":        "string",
					"description": "Difficulty tier id, e.g. easy, medium or hard",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed for a reproducible game (optional)",
				},
			},
			Required: []string{"player_count", "tier"},
		},
	}, c.handleStartGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "roll_dice",
		Description: "Roll the die for the current player and resolve the whole turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRollDice)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_snapshot",
		Description: "Get player positions, the current player and the game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameSnapshot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get paginated turn history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Turns per page (default 20, max 100)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTurnHistory)

	// Tiers
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_tiers",
		Description: "List available difficulty tiers",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListTiers)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the complete game rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Tool arguments

type startGameArgs struct {
	PlayerCount int    `mapstructure:"player_count"`
	Tier        string `mapstructure:"tier"`
	Seed        *int64 `mapstructure:"seed"`
}

type sessionArgs struct {
	SessionID string `mapstructure:"session_id"`
}

type historyArgs struct {
	SessionID string `mapstructure:"session_id"`
	Page      int    `mapstructure:"page"`
	Limit     int    `mapstructure:"limit"`
	Order     string `mapstructure:"order"`
}

// decodeArgs copies tool arguments into out. Numbers may arrive as JSON
// floats or strings depending on the agent.
func decodeArgs(request mcp.CallToolRequest, out interface{}) error {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		args = map[string]interface{}{}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args startGameArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{
		"player_count": args.PlayerCount,
		"tier":         args.Tier,
	}
	if args.Seed != nil {
		body["seed"] = *args.Seed
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&b, "- %s (Tier: %s, Players: %d, State: %s, Turns: %d)\n",
			s.ID, s.Tier, s.PlayerCount, s.Snapshot.State, s.Snapshot.Turns)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleRollDice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.SessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	var result service.RollResult
	path := fmt.Sprintf("/api/sessions/%s/roll", url.PathEscape(args.SessionID))
	if err := c.apiCall(ctx, http.MethodPost, path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRollResult(&result)), nil
}

func (c *Client) handleGameSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sessionArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.SessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	var snap engine.Snapshot
	path := fmt.Sprintf("/api/sessions/%s/snapshot", url.PathEscape(args.SessionID))
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snap)), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args historyArgs
	if err := decodeArgs(request, &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.SessionID == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	params := url.Values{}
	if args.Page > 0 {
		params.Set("page", strconv.Itoa(args.Page))
	}
	if args.Limit > 0 {
		params.Set("limit", strconv.Itoa(args.Limit))
	}
	if args.Order != "" {
		params.Set("order", args.Order)
	}

	path := fmt.Sprintf("/api/sessions/%s/history", url.PathEscape(args.SessionID))
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListTiers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var tiers []service.TierInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/tiers", nil, &tiers); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Tiers:\n\n")
	for _, tier := range tiers {
		fmt.Fprintf(&b, "• %s (id: %s)\n  %s\n  Boards: %s\n\n",
			tier.Name, tier.ID, tier.Description, strings.Join(tier.BoardNames, ", "))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Snakes and Ladders - Complete Instructions

GAME OBJECTIVE:
Be the first player whose token lands exactly on square 100.

SETUP:
• 2 to 6 players, numbered 1..N, take turns in that order
• Every token starts off the board (position 0)
• The board comes from the chosen tier: Easy, Medium or Hard

TURN RULES:
• roll_dice rolls one six-sided die for the current player
• Off the board: only a 6 enters the token, onto square 1. Any other roll does nothing
• On the board: the token moves forward by the die value, one square at a time
• A roll that would pass 100 is forfeited and the token stays put
• Landing exactly on 100 wins immediately
• Landing on a ladder foot climbs to its top; landing on a snake head slides to its tail
• Passing over a jump square does nothing, only the final square counts
• Jumps never chain: a jump never ends on another jump
• The turn always passes to the next player. A 6 does not give an extra turn

AFTER THE GAME:
Once a player wins the session is over. Further rolls are rejected; start a new game instead.`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	layout := ""
	if session.Layout != nil {
		layout = session.Layout.Name
	}
	return fmt.Sprintf("Session: %s\nTier: %s (board: %s)\nPlayers: %d\nSeed: %d\nCreated: %s\n\n%s",
		session.ID, session.Tier, layout, session.PlayerCount, session.Seed,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(&session.Snapshot))
}

func formatSnapshot(snap *engine.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "State: %s | Turns played: %d\n", snap.State, snap.Turns)
	for i, p := range snap.Players {
		marker := "  "
		if i == snap.CurrentPlayerIndex && snap.State != engine.StateGameOver {
			marker = "▶ "
		}
		position := "off board"
		if p.Position > engine.OffBoard {
			position = fmt.Sprintf("square %d", p.Position)
		}
		fmt.Fprintf(&b, "%sPlayer %d: %s\n", marker, p.ID, position)
	}

	if snap.WinnerID != 0 {
		fmt.Fprintf(&b, "\n🏆 Player %d won!\n", snap.WinnerID)
	}

	return b.String()
}

func formatRollResult(result *service.RollResult) string {
	var b strings.Builder
	turn := result.Turn
	if turn != nil {
		fmt.Fprintf(&b, "Turn %d: Player %d rolled %d (%d → %d)\n", turn.Turn, turn.PlayerID, turn.DieValue, turn.From, turn.To)
		if len(turn.StepEvents) > 0 {
			squares := make([]string, 0, len(turn.StepEvents))
			for _, ev := range turn.StepEvents {
				squares = append(squares, strconv.Itoa(ev.Square))
			}
			fmt.Fprintf(&b, "Steps: %s\n", strings.Join(squares, ", "))
		}
		if turn.JumpEvent != nil {
			fmt.Fprintf(&b, "Jump: %s %d → %d\n", turn.JumpEvent.Kind, turn.JumpEvent.From, turn.JumpEvent.To)
		}
	}
	fmt.Fprintf(&b, "Message: %s\n\n", result.Message)
	b.WriteString(formatSnapshot(&result.Snapshot))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn History (Page %d/%d) - Total turns: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	for _, turn := range history.Turns {
		jump := ""
		if turn.JumpEvent != nil {
			jump = fmt.Sprintf(" via %s", turn.JumpEvent.Kind)
		}
		fmt.Fprintf(&b, "%d. Player %d rolled %d: %d → %d%s\n",
			turn.Turn, turn.PlayerID, turn.DieValue, turn.From, turn.To, jump)
	}

	return b.String()
}

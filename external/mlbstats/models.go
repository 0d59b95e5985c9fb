package mlbstats

type scheduleEnvelope struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePK       int64         `json:"gamePk"`
	OfficialDate string        `json:"officialDate"`
	Status       gameStatus    `json:"status"`
	Teams        scheduleTeams `json:"teams"`
}

type gameStatus struct {
	StatusCode       string `json:"statusCode"`
	AbstractGameCode string `json:"abstractGameCode"`
	DetailedState    string `json:"detailedState"`
}

type scheduleTeams struct {
	Home scheduleSide `json:"home"`
	Away scheduleSide `json:"away"`
}

type scheduleSide struct {
	Team teamRef `json:"team"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type boxscoreEnvelope struct {
	Teams struct {
		Home boxscoreTeam `json:"home"`
		Away boxscoreTeam `json:"away"`
	} `json:"teams"`
}

type boxscoreTeam struct {
	Team    teamRef                   `json:"team"`
	Players map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person person `json:"person"`
	Stats  struct {
		Batting *battingStats `json:"batting"`
	} `json:"stats"`
}

type battingStats struct {
	HomeRuns int `json:"homeRuns"`
}

type person struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

type teamsEnvelope struct {
	Teams []club `json:"teams"`
}

type club struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Active       *bool  `json:"active"`
}

type rosterEnvelope struct {
	Roster []rosterItem `json:"roster"`
	TeamID int64        `json:"teamId"`
}

type rosterItem struct {
	Person   person   `json:"person"`
	Position position `json:"position"`
}

// position.code is numeric for most players ("1" pitcher, "10" DH); the
// abbreviation carries the letter code.
type position struct {
	Code         string `json:"code"`
	Abbreviation string `json:"abbreviation"`
	Type         string `json:"type"`
}

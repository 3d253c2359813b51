package catalog

import (
	"fmt"

	"github.com/sportsmind/athlete-mind-meter/internal/engine"
)

// DefaultQuestions returns the embedded question set: five items per
// quality on the 0-10 scale, sportsmanship items presented first and
// reverse-keyed.
func DefaultQuestions() []Question {
	type item struct {
		dimension engine.Dimension
		texts     [5]string
	}

	sportsmanship := []item{
		{engine.Courage, [5]string{
			"I avoid situations where I might fail in front of others.",
			"I hesitate to take on opponents who are clearly stronger than me.",
			"I hold back from speaking up when I disagree with my team.",
			"I stick to plays I know rather than attempting something risky.",
			"I feel paralyzed when a match is on the line.",
		}},
		{engine.Resilience, [5]string{
			"A harsh word from a coach stays with me for days.",
			"One bad play tends to ruin the rest of my game.",
			"Criticism makes me want to stop trying.",
			"I replay my mistakes long after the game is over.",
			"Losing makes me doubt whether I should continue competing.",
		}},
		{engine.Cooperation, [5]string{
			"I would rather solve problems alone than coordinate with teammates.",
			"I find it hard to celebrate a teammate's success.",
			"I resist changing my role for the good of the team.",
			"I tune out during team meetings.",
			"I compete with my own teammates more than I support them.",
		}},
		{engine.NaturalAcceptance, [5]string{
			"I pretend to be someone I am not around my team.",
			"I have trouble admitting my weaknesses to others.",
			"I feel I must always justify my place on the team.",
			"I hide how I really feel after a loss.",
			"I compare my natural style to others' and try to copy theirs.",
		}},
		{engine.NonRationality, [5]string{
			"I need a logical reason before I trust a gut feeling.",
			"I dismiss hunches that I cannot explain.",
			"I overanalyze moments that call for instinct.",
			"I distrust decisions made in the flow of play.",
			"I second-guess spontaneous choices even when they work.",
		}},
	}

	selfEsteem := []item{
		{engine.SelfDetermination, [5]string{
			"I choose my own training priorities rather than waiting to be told.",
			"My goals in sport are ones I set for myself.",
			"I make the final call on decisions that affect my development.",
			"I practice because I want to, not because someone expects it.",
			"When my plan conflicts with others' advice, I can still choose my own path.",
		}},
		{engine.SelfAcceptance, [5]string{
			"I can acknowledge my weaknesses without beating myself up.",
			"I accept the kind of athlete I am right now.",
			"I am comfortable with the parts of my game that are still rough.",
			"I can laugh about my off days.",
			"I do not need to be perfect to feel okay about myself.",
		}},
		{engine.SelfWorth, [5]string{
			"I matter to my team beyond the points I score.",
			"I feel valuable even when I am not in the starting lineup.",
			"My worth as a person does not rise and fall with results.",
			"People around me are glad I am part of the group.",
			"I bring something to my sport that nobody else does.",
		}},
		{engine.SelfEfficacy, [5]string{
			"When I set a goal, I believe I can reach it.",
			"I can perform under pressure when it counts.",
			"Difficult drills feel like challenges I can handle.",
			"I trust my ability to come back from a setback.",
			"I can learn new skills faster than I expect.",
		}},
	}

	athleteMind := []item{
		{engine.Introspection, [5]string{
			"I regularly review my own play to find what to improve.",
			"I understand why I perform well on some days and poorly on others.",
			"I notice my emotional state during competition.",
			"After a game I think through my decisions, not just the result.",
			"I know which situations bring out my worst habits.",
		}},
		{engine.SelfControl, [5]string{
			"I keep my composure when a referee's call goes against me.",
			"I can stick to a routine even when motivation is low.",
			"I resist distractions in the days before a big event.",
			"I control my temper when an opponent provokes me.",
			"I can calm myself down quickly after a mistake.",
		}},
		{engine.Devotion, [5]string{
			"I put the team's needs ahead of my own highlight moments.",
			"I do unglamorous work that helps others perform.",
			"I support teammates who are struggling, even mid-game.",
			"I show up fully for practices that do not benefit me directly.",
			"I sacrifice personal statistics for team outcomes.",
		}},
		{engine.Intuition, [5]string{
			"I sense where a play is going before it develops.",
			"I make good decisions without having time to think.",
			"I can read an opponent's intention from small cues.",
			"My first instinct in a game is usually right.",
			"I adapt on the fly when a plan breaks down.",
		}},
		{engine.Sensitivity, [5]string{
			"I pick up on teammates' moods before they say anything.",
			"I notice small changes in the flow of a game.",
			"I adjust how I communicate depending on who I am talking to.",
			"I sense tension in the team early.",
			"I am aware of how my behavior affects the people around me.",
		}},
		{engine.Steadiness, [5]string{
			"My performance stays consistent from game to game.",
			"I prepare the same careful way whether the match is big or small.",
			"Teammates can rely on me to do my job every time.",
			"I rarely take risks that could cost the team.",
			"I keep doing the basics well even when games get chaotic.",
		}},
		{engine.Comparison, [5]string{
			"I measure my progress against the best players around me.",
			"Watching a rival perform well pushes me to train harder.",
			"I study opponents to understand exactly where I stand.",
			"Rankings and selection lists sharpen my focus.",
			"I use others' achievements as benchmarks for my own.",
		}},
		{engine.ResultFocus, [5]string{
			"Winning matters more to me than playing beautifully.",
			"I judge a season by the results it produced.",
			"I stay locked on the scoreboard objective during games.",
			"I set concrete, measurable targets for myself.",
			"A good process without a good result leaves me unsatisfied.",
		}},
		{engine.Assertion, [5]string{
			"I say clearly what I think the team should do.",
			"I ask for the ball in decisive moments.",
			"I voice disagreement with a plan I believe is wrong.",
			"I put myself forward for responsibility.",
			"I defend my position even against senior teammates.",
		}},
		{engine.Commitment, [5]string{
			"I hold myself to standards beyond what coaches require.",
			"I keep refining details other players consider good enough.",
			"I have non-negotiable habits in how I prepare.",
			"I care deeply about doing things my own exacting way.",
			"I will repeat a drill until it meets my personal standard.",
		}},
	}

	var questions []Question
	order := 1
	add := func(items []item, reversed bool) {
		for _, it := range items {
			for i, text := range it.texts {
				questions = append(questions, Question{
					ID:        questionID(it.dimension, i+1),
					Text:      text,
					Dimension: it.dimension,
					Reversed:  reversed,
					Order:     order,
				})
				order++
			}
		}
	}

	add(sportsmanship, true)
	add(selfEsteem, false)
	add(athleteMind, false)

	return questions
}

func questionID(d engine.Dimension, n int) string {
	return fmt.Sprintf("%s_%d", d, n)
}

// DefaultProfiles returns the five embedded archetype profiles. Each
// archetype ranks all ten athlete-mind qualities, strongest signal first,
// with weights running ten down to one; every profile carries a distinct
// ranking, so each archetype has vectors it wins outright.
func DefaultProfiles() []engine.ArchetypeProfile {
	return []engine.ArchetypeProfile{
		{
			Archetype:   engine.ArchetypeStriker,
			Label:       "Striker",
			Description: "Chases outcomes and acts fast. Sets clear goals and puts results above everything else.",
			Weights: map[engine.Dimension]float64{
				engine.ResultFocus:   10,
				engine.Assertion:     9,
				engine.Intuition:     8,
				engine.Steadiness:    7,
				engine.SelfControl:   6,
				engine.Comparison:    5,
				engine.Devotion:      4,
				engine.Commitment:    3,
				engine.Sensitivity:   2,
				engine.Introspection: 1,
			},
		},
		{
			Archetype:   engine.ArchetypeAttacker,
			Label:       "Attacker",
			Description: "Aggressive and result-driven, with the instinct to break situations open from the front line.",
			Weights: map[engine.Dimension]float64{
				engine.ResultFocus:   10,
				engine.Assertion:     9,
				engine.Intuition:     8,
				engine.SelfControl:   7,
				engine.Comparison:    6,
				engine.Steadiness:    5,
				engine.Devotion:      4,
				engine.Sensitivity:   3,
				engine.Commitment:    2,
				engine.Introspection: 1,
			},
		},
		{
			Archetype:   engine.ArchetypePlaymaker,
			Label:       "Playmaker",
			Description: "Reads the whole team and makes measured calls. Harmony, analysis, and flexibility stand out.",
			Weights: map[engine.Dimension]float64{
				engine.Steadiness:    10,
				engine.Introspection: 9,
				engine.Devotion:      8,
				engine.Comparison:    7,
				engine.Assertion:     6,
				engine.Commitment:    5,
				engine.Intuition:     4,
				engine.Sensitivity:   3,
				engine.SelfControl:   2,
				engine.ResultFocus:   1,
			},
		},
		{
			Archetype:   engine.ArchetypeAnchor,
			Label:       "Anchor",
			Description: "The team's foundation. Provides stability and stays calm when situations turn difficult.",
			Weights: map[engine.Dimension]float64{
				engine.Steadiness:    10,
				engine.Devotion:      9,
				engine.Introspection: 8,
				engine.Sensitivity:   7,
				engine.SelfControl:   6,
				engine.Comparison:    5,
				engine.Commitment:    4,
				engine.Assertion:     3,
				engine.ResultFocus:   2,
				engine.Intuition:     1,
			},
		},
		{
			Archetype:   engine.ArchetypeDefender,
			Label:       "Defender",
			Description: "Guards the team's base, heads off crises, and keeps things steady through cooperation.",
			Weights: map[engine.Dimension]float64{
				engine.Steadiness:    10,
				engine.Devotion:      9,
				engine.Sensitivity:   8,
				engine.Introspection: 7,
				engine.Comparison:    6,
				engine.SelfControl:   5,
				engine.Assertion:     4,
				engine.Commitment:    3,
				engine.ResultFocus:   2,
				engine.Intuition:     1,
			},
		},
	}
}

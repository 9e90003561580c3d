package server

import (
	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/prompt"
)

type lessonRequest struct {
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
	CustomText string `json:"custom_text"`
}

type answerRequest struct {
	Text string `json:"text"`
}

type requestDTO struct {
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
	CustomText string `json:"custom_text,omitempty"`
}

type sectionDTO struct {
	Purpose string `json:"purpose"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

type bannerDTO struct {
	Purpose string `json:"purpose"`
	Message string `json:"message"`
}

type quizItemDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type sessionResponse struct {
	ID         string        `json:"id"`
	Phase      string        `json:"phase"`
	Title      string        `json:"title,omitempty"`
	Request    *requestDTO   `json:"request,omitempty"`
	Sentence   string        `json:"sentence,omitempty"`
	Sections   []sectionDTO  `json:"sections"`
	Banners    []bannerDTO   `json:"banners"`
	Quiz       []quizItemDTO `json:"quiz"`
	Evaluation string        `json:"evaluation,omitempty"`
}

func toSessionResponse(s *lesson.Session) sessionResponse {
	resp := sessionResponse{
		ID:       s.ID,
		Phase:    s.Phase.String(),
		Sentence: s.Sentence,
		Sections: make([]sectionDTO, 0, len(s.Sections)),
		Banners:  make([]bannerDTO, 0, len(s.Banners)),
		Quiz:     make([]quizItemDTO, 0, s.Quiz.Len()),
	}
	if s.Started() {
		resp.Title = string(s.Request.Language) + " - " + string(s.Request.Difficulty) + " 레벨 학습"
		resp.Request = &requestDTO{
			Language:   string(s.Request.Language),
			Difficulty: string(s.Request.Difficulty),
			CustomText: s.Request.CustomText,
		}
	}
	for _, sec := range s.Sections {
		resp.Sections = append(resp.Sections, sectionDTO{Purpose: string(sec.Purpose), Title: sec.Title, Text: sec.Text})
	}
	for _, b := range s.Banners {
		resp.Banners = append(resp.Banners, bannerDTO{Purpose: string(b.Purpose), Message: b.Message})
	}
	for _, it := range s.Quiz.Items() {
		resp.Quiz = append(resp.Quiz, quizItemDTO{Question: it.Question, Answer: it.Answer})
	}
	if s.Evaluated() {
		resp.Evaluation = s.Evaluation
	}
	return resp
}

type catalogLanguage struct {
	Name      string            `json:"name"`
	Sentences map[string]string `json:"sentences"`
}

type catalogResponse struct {
	Languages    []catalogLanguage `json:"languages"`
	Difficulties []string          `json:"difficulties"`
	Sections     []sectionTitle    `json:"sections"`
	Questions    []string          `json:"questions"`
}

type sectionTitle struct {
	Purpose string `json:"purpose"`
	Title   string `json:"title"`
}

func toCatalogResponse(c *catalog.Catalog) catalogResponse {
	resp := catalogResponse{
		Questions: lesson.Questions[:],
	}
	for _, d := range catalog.Difficulties() {
		resp.Difficulties = append(resp.Difficulties, string(d))
	}
	for _, lang := range c.Languages() {
		cl := catalogLanguage{Name: string(lang), Sentences: make(map[string]string)}
		for _, d := range catalog.Difficulties() {
			if sentence, err := c.Lookup(lang, d); err == nil {
				cl.Sentences[string(d)] = sentence
			}
		}
		resp.Languages = append(resp.Languages, cl)
	}
	for _, p := range prompt.Sections {
		resp.Sections = append(resp.Sections, sectionTitle{Purpose: string(p), Title: prompt.Title(p)})
	}
	return resp
}

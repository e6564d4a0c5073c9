package reader

// Layout - относительные пути файлов внутри каталога экспорта.
type Layout struct {
	Friends       string `json:"friends" yaml:"friends"`
	AddressBook   string `json:"address_book" yaml:"address_book"`
	Comments      string `json:"comments" yaml:"comments"`
	Interests     string `json:"interests" yaml:"interests"`
	SearchHistory string `json:"search_history" yaml:"search_history"`
	PostsDir      string `json:"posts_dir" yaml:"posts_dir"`
	MessagesDir   string `json:"messages_dir" yaml:"messages_dir"`
}

// DefaultLayout возвращает раскладку стандартного экспорта.
func DefaultLayout() Layout {
	return Layout{
		Friends:       "friends/friends.json",
		AddressBook:   "about_you/your_address_books.json",
		Comments:      "comments/comments.json",
		Interests:     "ads_and_businesses/ads_interests.json",
		SearchHistory: "search_history/your_search_history.json",
		PostsDir:      "posts",
		MessagesDir:   "messages",
	}
}

// withDefaults заполняет пустые пути значениями по умолчанию.
func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&l.Friends, d.Friends)
	fill(&l.AddressBook, d.AddressBook)
	fill(&l.Comments, d.Comments)
	fill(&l.Interests, d.Interests)
	fill(&l.SearchHistory, d.SearchHistory)
	fill(&l.PostsDir, d.PostsDir)
	fill(&l.MessagesDir, d.MessagesDir)
	return l
}

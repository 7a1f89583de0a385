package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"film-backend/models"
	"film-backend/utils"
)

// MemoryStore is a mutex-guarded, process-local Store. It backs the engine
// tests and local runs that do not need persistence. Returned slices and
// records are copies.
type MemoryStore struct {
	mu sync.RWMutex

	films     map[int64]models.Film
	genres    map[int64]models.Genre
	directors map[int64]models.Director
	users     map[int64]models.User

	likesByUser  map[int64]utils.Set
	likersByFilm map[int64]utils.Set
	friends      map[int64]utils.Set

	reviews      map[int64]models.Review
	votes        map[int64]map[int64]int // review -> user -> value
	nextReviewID int64

	events      []models.Event
	nextEventID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		films:        make(map[int64]models.Film),
		genres:       make(map[int64]models.Genre),
		directors:    make(map[int64]models.Director),
		users:        make(map[int64]models.User),
		likesByUser:  make(map[int64]utils.Set),
		likersByFilm: make(map[int64]utils.Set),
		friends:      make(map[int64]utils.Set),
		reviews:      make(map[int64]models.Review),
		votes:        make(map[int64]map[int64]int),
	}
}

// PutFilm inserts or replaces a film together with the tags it references.
// Rate is recomputed from the stored likes.
func (m *MemoryStore) PutFilm(f models.Film) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range f.Genres {
		m.genres[g.ID] = g
	}
	for _, d := range f.Directors {
		m.directors[d.ID] = d
	}
	f.Rate = len(m.likersByFilm[f.ID])
	m.films[f.ID] = cloneFilm(f)
}

func (m *MemoryStore) PutUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *MemoryStore) PutDirector(d models.Director) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.directors[d.ID] = d
}

func (m *MemoryStore) PutGenre(g models.Genre) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.genres[g.ID] = g
}

func cloneFilm(f models.Film) models.Film {
	f.Genres = slices.Clone(f.Genres)
	f.Directors = slices.Clone(f.Directors)
	return f
}

// Likes

func (m *MemoryStore) LikesOf(_ context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.likesByUser[userID].Sorted(), nil
}

func (m *MemoryStore) LikersOf(_ context.Context, filmID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.likersByFilm[filmID].Sorted(), nil
}

func (m *MemoryStore) LikeCounts(_ context.Context) (map[int64]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[int64]int, len(m.likersByFilm))
	for filmID, likers := range m.likersByFilm {
		if len(likers) > 0 {
			counts[filmID] = len(likers)
		}
	}
	return counts, nil
}

func (m *MemoryStore) AddLike(_ context.Context, filmID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likersByFilm[filmID].Has(userID) {
		return false, nil
	}
	addEdge(m.likersByFilm, filmID, userID)
	addEdge(m.likesByUser, userID, filmID)
	m.refreshRate(filmID)
	return true, nil
}

func (m *MemoryStore) RemoveLike(_ context.Context, filmID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.likersByFilm[filmID].Has(userID) {
		return false, nil
	}
	delete(m.likersByFilm[filmID], userID)
	delete(m.likesByUser[userID], filmID)
	m.refreshRate(filmID)
	return true, nil
}

// refreshRate must be called with mu held.
func (m *MemoryStore) refreshRate(filmID int64) {
	if f, ok := m.films[filmID]; ok {
		f.Rate = len(m.likersByFilm[filmID])
		m.films[filmID] = f
	}
}

func addEdge(edges map[int64]utils.Set, from, to int64) {
	set, ok := edges[from]
	if !ok {
		set = utils.NewSet()
		edges[from] = set
	}
	set.Add(to)
}

// Friendships

func (m *MemoryStore) FriendsOf(_ context.Context, userID int64) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.friends[userID].Sorted(), nil
}

func (m *MemoryStore) AddFriend(_ context.Context, userID, friendID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.friends[userID].Has(friendID) {
		return false, nil
	}
	addEdge(m.friends, userID, friendID)
	return true, nil
}

func (m *MemoryStore) RemoveFriend(_ context.Context, userID, friendID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.friends[userID].Has(friendID) {
		return false, nil
	}
	delete(m.friends[userID], friendID)
	return true, nil
}

// Catalog

func (m *MemoryStore) Film(_ context.Context, id int64) (*models.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.films[id]
	if !ok {
		return nil, ErrNotFound
	}
	f = cloneFilm(f)
	return &f, nil
}

func (m *MemoryStore) FilmsByIDs(_ context.Context, ids []int64) ([]models.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	films := []models.Film{}
	for _, id := range utils.NewSet(ids...).Sorted() {
		if f, ok := m.films[id]; ok {
			films = append(films, cloneFilm(f))
		}
	}
	return films, nil
}

func (m *MemoryStore) Films(_ context.Context) ([]models.Film, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	films := make([]models.Film, 0, len(m.films))
	for _, f := range m.films {
		films = append(films, cloneFilm(f))
	}
	slices.SortFunc(films, func(a, b models.Film) int { return cmp.Compare(a.ID, b.ID) })
	return films, nil
}

func (m *MemoryStore) Director(_ context.Context, id int64) (*models.Director, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.directors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *MemoryStore) Genre(_ context.Context, id int64) (*models.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.genres[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (m *MemoryStore) User(_ context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) UsersByIDs(_ context.Context, ids []int64) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := []models.User{}
	for _, id := range utils.NewSet(ids...).Sorted() {
		if u, ok := m.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// Votes and reviews

func (m *MemoryStore) VotesOf(_ context.Context, reviewID int64) ([]models.UsefulVote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	votes := []models.UsefulVote{}
	for userID, value := range m.votes[reviewID] {
		votes = append(votes, models.UsefulVote{ReviewID: reviewID, UserID: userID, Value: value})
	}
	slices.SortFunc(votes, func(a, b models.UsefulVote) int { return cmp.Compare(a.UserID, b.UserID) })
	return votes, nil
}

func (m *MemoryStore) ReplaceVote(_ context.Context, v models.UsefulVote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byUser, ok := m.votes[v.ReviewID]
	if !ok {
		byUser = make(map[int64]int)
		m.votes[v.ReviewID] = byUser
	}
	byUser[v.UserID] = v.Value
	return nil
}

func (m *MemoryStore) DeleteVote(_ context.Context, reviewID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.votes[reviewID][userID]; !ok {
		return false, nil
	}
	delete(m.votes[reviewID], userID)
	return true, nil
}

func (m *MemoryStore) Review(_ context.Context, id int64) (*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *MemoryStore) Reviews(_ context.Context, filmID *int64) ([]models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reviews := []models.Review{}
	for _, r := range m.reviews {
		if filmID == nil || r.FilmID == *filmID {
			reviews = append(reviews, r)
		}
	}
	slices.SortFunc(reviews, func(a, b models.Review) int { return cmp.Compare(a.ID, b.ID) })
	return reviews, nil
}

func (m *MemoryStore) CreateReview(_ context.Context, r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextReviewID++
	r.ID = m.nextReviewID
	r.Useful = 0
	m.reviews[r.ID] = *r
	return nil
}

func (m *MemoryStore) UpdateReview(_ context.Context, r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.reviews[r.ID]
	if !ok {
		return ErrNotFound
	}
	existing.IsPositive = r.IsPositive
	existing.Content = r.Content
	m.reviews[r.ID] = existing
	return nil
}

func (m *MemoryStore) DeleteReview(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return false, nil
	}
	delete(m.reviews, id)
	delete(m.votes, id)
	return true, nil
}

// Events

func (m *MemoryStore) AppendEvent(_ context.Context, e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextEventID++
	e.ID = m.nextEventID
	m.events = append(m.events, *e)
	return nil
}

func (m *MemoryStore) EventsOf(_ context.Context, userID int64) ([]models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := []models.Event{}
	for _, e := range m.events {
		if e.UserID == userID {
			events = append(events, e)
		}
	}
	slices.SortFunc(events, func(a, b models.Event) int {
		switch {
		case a.NewerThan(b):
			return -1
		case b.NewerThan(a):
			return 1
		}
		return 0
	})
	return events, nil
}


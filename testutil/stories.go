package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoryRepo is an in-memory storyRepo.StoryRepository.
type StoryRepo struct {
	Failures
	mu      sync.Mutex
	stories []*models.Story
}

func NewStoryRepo(seed ...models.Story) *StoryRepo {
	r := &StoryRepo{}
	for i := range seed {
		s := seed[i]
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		r.stories = append(r.stories, cloneStory(&s))
	}
	return r
}

func cloneStory(s *models.Story) *models.Story {
	c := *s
	c.Images = append([]string{}, s.Images...)
	return &c
}

func (r *StoryRepo) Create(ctx context.Context, story *models.Story) error {
	if err := r.check("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if story.ID.IsZero() {
		story.ID = primitive.NewObjectID()
	}
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}
	r.stories = append(r.stories, cloneStory(story))
	return nil
}

func (r *StoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Story, error) {
	if err := r.check("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stories {
		if s.ID == id {
			return cloneStory(s), nil
		}
	}
	return nil, nil
}

func (r *StoryRepo) list(match func(s *models.Story) bool) []models.Story {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Story{}
	for _, s := range r.stories {
		if match(s) {
			out = append(out, *cloneStory(s))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *StoryRepo) ListAll(ctx context.Context) ([]models.Story, error) {
	if err := r.check("ListAll"); err != nil {
		return nil, err
	}
	return r.list(func(*models.Story) bool { return true }), nil
}

func (r *StoryRepo) ListByAuthor(ctx context.Context, email string) ([]models.Story, error) {
	if err := r.check("ListByAuthor"); err != nil {
		return nil, err
	}
	return r.list(func(s *models.Story) bool { return s.Author.Email == email }), nil
}

func (r *StoryRepo) update(match func(s *models.Story) bool, apply func(s *models.Story) bool) models.UpdateCount {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count models.UpdateCount
	for _, s := range r.stories {
		if !match(s) {
			continue
		}
		count.Matched++
		if apply(s) {
			count.Modified++
		}
	}
	return count
}

func storyByID(id primitive.ObjectID) func(s *models.Story) bool {
	return func(s *models.Story) bool { return s.ID == id }
}

func (r *StoryRepo) UpdateText(ctx context.Context, id primitive.ObjectID, title, text *string) (models.UpdateCount, error) {
	if err := r.check("UpdateText"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(storyByID(id), func(s *models.Story) bool {
		changed := false
		if title != nil && s.Title != *title {
			s.Title, changed = *title, true
		}
		if text != nil && s.Text != *text {
			s.Text, changed = *text, true
		}
		return changed
	}), nil
}

func (r *StoryRepo) PushImages(ctx context.Context, id primitive.ObjectID, images []string) (models.UpdateCount, error) {
	if err := r.check("PushImages"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(storyByID(id), func(s *models.Story) bool {
		s.Images = append(s.Images, images...)
		return len(images) > 0
	}), nil
}

func (r *StoryRepo) PullImage(ctx context.Context, id primitive.ObjectID, image string) (models.UpdateCount, error) {
	if err := r.check("PullImage"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(storyByID(id), func(s *models.Story) bool {
		kept := s.Images[:0]
		for _, img := range s.Images {
			if img != image {
				kept = append(kept, img)
			}
		}
		changed := len(kept) != len(s.Images)
		s.Images = kept
		return changed
	}), nil
}

func (r *StoryRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if err := r.check("Delete"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.stories {
		if s.ID == id {
			r.stories = append(r.stories[:i], r.stories[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *StoryRepo) SyncAuthorProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error) {
	if err := r.check("SyncAuthorProfile"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(
		func(s *models.Story) bool { return s.Author.Email == email },
		func(s *models.Story) bool { return applyProfile(&s.Author.Name, &s.Author.Photo, fields) },
	), nil
}

func (r *StoryRepo) Count(ctx context.Context) (int64, error) {
	if err := r.check("Count"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.stories)), nil
}

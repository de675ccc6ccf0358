package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
)

const collectionPosts = "blogs"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoLike struct {
	User primitive.ObjectID `bson:"user"`
}

type mongoPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	User       primitive.ObjectID `bson:"user"`
	Header     string             `bson:"header"`
	Body       string             `bson:"body"`
	FirstName  string             `bson:"firstName"`
	LastName   string             `bson:"lastName"`
	Picture    string             `bson:"picture,omitempty"`
	PostedOn   time.Time          `bson:"postedOn"`
	LastEdited time.Time          `bson:"lastEdited"`
	IsDeleted  bool               `bson:"isDeleted"`
	Likes      []mongoLike        `bson:"likes"`
}

func (mp mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:              mp.ID.Hex(),
		AuthorID:        mp.User.Hex(),
		Header:          mp.Header,
		Body:            mp.Body,
		AuthorFirstName: mp.FirstName,
		AuthorLastName:  mp.LastName,
		AuthorPicture:   mp.Picture,
		PostedOn:        mp.PostedOn.UTC(),
		LastEdited:      mp.LastEdited.UTC(),
		IsDeleted:       mp.IsDeleted,
		Likes:           likesToDomain(mp.Likes),
	}
}

func likesToDomain(in []mongoLike) []domain.Like {
	out := make([]domain.Like, 0, len(in))
	for _, l := range in {
		out = append(out, domain.Like{UserID: l.User.Hex()})
	}
	return out
}

// Create inserts a new post. Likes start empty.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	author, err := parseID(p.AuthorID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		User:       author,
		Header:     p.Header,
		Body:       p.Body,
		FirstName:  p.AuthorFirstName,
		LastName:   p.AuthorLastName,
		Picture:    p.AuthorPicture,
		PostedOn:   p.PostedOn.UTC(),
		LastEdited: p.LastEdited.UTC(),
		IsDeleted:  p.IsDeleted,
		Likes:      []mongoLike{},
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, storeErr("insert post", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// FindByID returns the post regardless of its isDeleted flag.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := parseID(id, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrPostNotFound
		}
		return nil, storeErr("find post", err)
	}
	return mp.toDomain(), nil
}

func listFilter(f ports.ListPostsFilter) (bson.M, error) {
	filter := bson.M{}
	if !f.IncludeDeleted {
		filter["isDeleted"] = false
	}
	if f.AuthorID != "" {
		author, err := primitive.ObjectIDFromHex(f.AuthorID)
		if err != nil {
			return nil, err
		}
		filter["user"] = author
	}
	return filter, nil
}

// List returns one page of posts ordered by postedOn descending.
func (r *PostRepository) List(ctx context.Context, f ports.ListPostsFilter) ([]*domain.Post, int64, error) {
	filter, err := listFilter(f)
	if err != nil {
		// No post can be written by an unparsable author id.
		return []*domain.Post{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, storeErr("count posts", err)
	}
	skip, ok := pageSkip(f.Page, f.Limit, total)
	if !ok {
		return []*domain.Post{}, total, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "postedOn", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, storeErr("list posts", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, storeErr("decode posts", err)
	}

	out := make([]*domain.Post, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

// pageSkip returns the number of documents before page. ok is false when the
// page starts past total, which also keeps huge page numbers from overflowing.
func pageSkip(page, limit int, total int64) (skip int64, ok bool) {
	if page < 1 || limit < 1 {
		return 0, false
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	if int64(page-1) >= pages {
		return 0, false
	}
	return int64(page-1) * int64(limit), true
}

// UpdateContent replaces header and body and stamps lastEdited.
func (r *PostRepository) UpdateContent(ctx context.Context, id, header, body string) (*domain.Post, error) {
	oid, err := parseID(id, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"header":     header,
		"body":       body,
		"lastEdited": time.Now().UTC(),
	}}

	mp, err := r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrPostNotFound
		}
		return nil, storeErr("update post", err)
	}
	return mp.toDomain(), nil
}

// SoftDelete marks the post deleted; the document is kept.
func (r *PostRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := parseID(id, domain.ErrPostNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isDeleted": true}})
	if err != nil {
		return storeErr("delete post", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func likeFilter(post, user primitive.ObjectID) bson.M {
	return bson.M{"_id": post, "isDeleted": false, "likes.user": bson.M{"$ne": user}}
}

func unlikeFilter(post, user primitive.ObjectID) bson.M {
	return bson.M{"_id": post, "isDeleted": false, "likes.user": user}
}

// likeMiss explains an update that matched nothing: either the post is gone
// or the like state already differs, in which case conflict is returned.
func (r *PostRepository) likeMiss(ctx context.Context, post primitive.ObjectID, conflict error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": post, "isDeleted": false}, options.Count().SetLimit(1))
	if err != nil {
		return storeErr("check post", err)
	}
	return missErr(n > 0, conflict)
}

func missErr(live bool, conflict error) error {
	if !live {
		return domain.ErrPostNotFound
	}
	return conflict
}

// AddLike appends userID to the post's likes. The filter skips posts the user
// already likes, so a lost race reports domain.ErrAlreadyLiked.
func (r *PostRepository) AddLike(ctx context.Context, id, userID string) ([]domain.Like, error) {
	oid, err := parseID(id, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	uid, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$push": bson.M{"likes": mongoLike{User: uid}}}

	mp, err := r.findOneAndUpdate(ctx, likeFilter(oid, uid), update)
	if err != nil {
		if isNoDocuments(err) {
			return nil, r.likeMiss(ctx, oid, domain.ErrAlreadyLiked)
		}
		return nil, storeErr("like post", err)
	}
	return likesToDomain(mp.Likes), nil
}

// RemoveLike pulls every like by userID from the post.
func (r *PostRepository) RemoveLike(ctx context.Context, id, userID string) ([]domain.Like, error) {
	oid, err := parseID(id, domain.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	uid, err := parseID(userID, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": uid}}}

	mp, err := r.findOneAndUpdate(ctx, unlikeFilter(oid, uid), update)
	if err != nil {
		if isNoDocuments(err) {
			return nil, r.likeMiss(ctx, oid, domain.ErrNotLiked)
		}
		return nil, storeErr("unlike post", err)
	}
	return likesToDomain(mp.Likes), nil
}

func (r *PostRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*mongoPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mp mongoPost
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// EnsureIndexes creates the indexes used by List.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "isDeleted", Value: 1}, {Key: "postedOn", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "postedOn", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
